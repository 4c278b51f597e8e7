// Package config locates and loads the optional setenv config file, which
// supplies defaults for command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variables that locate the config file.
const (
	// EnvFile names the config file directly. The value "off" disables it.
	EnvFile = "SETENV_CONFIG"
	// EnvHome replaces the config directory.
	EnvHome = "SETENV_CONFIG_HOME"
)

// disabled is the EnvFile value that turns the config file off.
const disabled = "off"

// Path returns the config file setenv reads, or "" when there is none.
//
// $SETENV_CONFIG wins when set, so a project or CI job can pin its own
// defaults; otherwise the file is config.yaml inside Dir.
func Path() string {
	switch file := os.Getenv(EnvFile); file {
	case "":
	case disabled:
		return ""
	default:
		return file
	}

	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

// Dir returns the setenv config directory: $SETENV_CONFIG_HOME, else a
// "setenv" directory under the user's config root. Returns "" if no home
// directory is known.
func Dir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	root := configRoot()
	if root == "" {
		return ""
	}
	return filepath.Join(root, "setenv")
}

// configRoot prefers $XDG_CONFIG_HOME on every platform, then %AppData% on
// Windows, then ~/.config.
func configRoot() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}
