// Package errors provides error handling for dyesthetics.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Marks so inner packages can tag a failure category without
//     exposing their concrete error types
//   - User-facing hints
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Tag the failure category
//	return errors.Mark(err, errors.ErrScan)
//
//	// Add hints for users
//	return errors.WithHint(err, "check that componentsDir exists")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Mark  = crdb.Mark
)

// User-facing hints
var (
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
)

// Error inspection
var (
	Is          = crdb.Is
	As          = crdb.As
	UnwrapAll   = crdb.UnwrapAll
	GetAllHints = crdb.GetAllHints
)

// Failure categories. Inner packages tag errors with errors.Mark so the
// orchestrator can classify them without inspecting concrete types.
var (
	// ErrConfiguration marks a configuration source that exists but cannot be
	// parsed or does not validate.
	ErrConfiguration = New("configuration error")

	// ErrScan marks a component root that cannot be read.
	ErrScan = New("scan failed")

	// ErrWrite marks an output file that cannot be created or written.
	ErrWrite = New("write failed")
)

// IsConfigurationError checks if an error is or wraps ErrConfiguration
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsScanError checks if an error is or wraps ErrScan
func IsScanError(err error) bool {
	return err != nil && Is(err, ErrScan)
}

// IsWriteError checks if an error is or wraps ErrWrite
func IsWriteError(err error) bool {
	return err != nil && Is(err, ErrWrite)
}
