// Package cmd implements the CLI commands for build-shell.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Core CLI
//
//   - root.go: Main entry point, App struct, cobra command setup, flags,
//     startup wiring (config merge, manifest read, selector discovery)
//   - init.go: The init subcommand that writes a default config file
//
// ## Interactive Mode
//
//   - interactive.go: go-prompt REPL session, completer, key binds
//
// # Key Components
//
// ## App
//
// The App struct holds application state: the merged configuration, the
// session state and the dispatcher. It's created in Execute() and filled in
// by bootstrap().
//
// ## InteractiveSession
//
// Manages one interactive shell session:
//   - One line of input per iteration, handed to the dispatcher
//   - Per-command errors printed without ending the session
//   - Ctrl+C cancels the current line; Ctrl+D on an empty line exits
//
// ## Dispatch
//
// Command classification and execution live in internal/dispatch; this
// package only reads lines and reports errors.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
