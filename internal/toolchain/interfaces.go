package toolchain

import "context"

// Runner defines the interface for executing invocations.
// This interface enables dependency injection and easier testing of the
// command dispatcher.
type Runner interface {
	// Run executes an invocation synchronously, waiting for completion.
	// A non-zero exit or a failure to start both return an error.
	Run(ctx context.Context, inv Invocation) error

	// WatchAvailable reports whether the file-watch companion tool can be
	// invoked.
	WatchAvailable(ctx context.Context) bool
}

// Ensure concrete type implements the interface
var _ Runner = (*ExecRunner)(nil)
