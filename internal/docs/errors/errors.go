// Package errors provides sentinel errors for documentation discovery operations.
package errors

import "errors"

var (
	// ErrDocsDirNotFound indicates the configured documentation directory does not exist.
	ErrDocsDirNotFound = errors.New("documentation directory not found")

	// ErrDocsDirWalkFailed indicates filesystem traversal of a docs directory failed.
	ErrDocsDirWalkFailed = errors.New("documentation directory walk failed")

	// ErrInvalidRelativePath indicates calculating relative path from docs base failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
