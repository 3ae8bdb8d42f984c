// Package logging provides the subsystem-tagged structured logging used across
// bundletest.
//
// The package wraps Go's standard slog package. Every entry carries a
// subsystem attribute so kernel, container and builder output can be filtered
// when a test suite runs with verbose logging.
//
// # Usage
//
//	logging.Init(logging.LevelDebug, os.Stderr)
//
//	logging.Info("Kernel", "Booted kernel for environment %s", env)
//	logging.Debug("Container", "Compiled %d definitions", n)
//	logging.Error("Builder", err, "Kernel %s rejected", name)
//
// Until Init is called, only warnings and errors are written to stderr, which
// keeps test output quiet by default.
//
// # Module Loggers
//
// NewLogger builds an independent *slog.Logger for a writer. Modules use it to
// expose a logger service writing into the kernel log directory without
// touching the process-wide default.
package logging
