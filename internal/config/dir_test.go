package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir(t *testing.T) {
	tests := []struct {
		name string
		home string
		xdg  string
		want string
	}{
		{"explicit home", "/custom/path", "/xdg", "/custom/path"},
		{"xdg root", "", "/xdg/config", filepath.Join("/xdg/config", "setenv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvHome, tt.home)
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)
			if got := Dir(); got != tt.want {
				t.Errorf("Dir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDir_Default(t *testing.T) {
	t.Setenv(EnvHome, "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}
	if filepath.Base(dir) != "setenv" {
		t.Errorf("Dir() = %q, want path ending in 'setenv'", dir)
	}
	if runtime.GOOS != "windows" && filepath.Base(filepath.Dir(dir)) != ".config" {
		t.Errorf("Dir() = %q, want it under ~/.config", dir)
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		name string
		file string
		home string
		want string
	}{
		{"inside config dir", "", "/cfg", filepath.Join("/cfg", FileName)},
		{"explicit file wins", "/project/setenv.yaml", "/cfg", "/project/setenv.yaml"},
		{"disabled", "off", "/cfg", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvFile, tt.file)
			t.Setenv(EnvHome, tt.home)
			if got := Path(); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPath_DisabledLoadsDefaults(t *testing.T) {
	t.Setenv(EnvFile, "off")

	cfg, err := Load(Path())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}
