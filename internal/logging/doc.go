// Package logging provides structured logging utilities for the orderintake
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "gmail.fetch")
//	logger.Info("fetched inbox",
//	    logging.Status(logging.StatusSuccess))
//
// Errors can be attached without nil checks:
//
//	logger.Warn("posting failed", logging.Err(err))
package logging
