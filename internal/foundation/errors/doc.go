// Package errors provides the classified error primitives used across doctags.
//
// Every failure in a build is fatal: the package exists so that the CLI can
// tell a broken configuration from an unreadable document or a failing
// template, and map each to a distinct exit code.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, read, parse, template, write, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.ParseError("invalid front matter").
//		WithContext("file", relPath).
//		WithCause(yamlErr).
//		Build()
package errors
