// Package output provides structured output handling for the setenv CLI.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches
// between human-readable and JSON output based on the --json flag and
// disables styling when output is not a terminal:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Wrote .env"})
//	printer.Error(err)
//
// Structured listings use WriteJSON or WriteYAML; tabular ones use Table.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: Success, or prompt canceled by the user
//	output.ExitUserError   // 1: Malformed template/preset, missing value
//	output.ExitSystemError // 2: Template not found, I/O error
//
// Errors built with NewUserError or NewSystemErrorWithCause carry these
// codes through to JSON error output and the process exit status.
package output
