package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldScanID = "scan_id"

	// Components
	FieldComponent = "component"
	FieldRegistry  = "registry"

	// Operations
	FieldOperation = "operation"
	FieldPath      = "path"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError     = "error"
	FieldErrorKind = "error_kind"

	// Counts and sizes
	FieldCount     = "count"
	FieldSkipped   = "skipped"
	FieldSize      = "size"
	FieldVerbosity = "verbosity"

	// Files and paths
	FieldFile   = "file"
	FieldSource = "source"
	FieldOutput = "output"
)

// ComponentLogger returns a named child of the global logger.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	sc, err := scanner.New(cfg, scanner.WithLogger(logger.ComponentLogger("scanner")))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	scanLogger := logger.ChildLogger(baseLogger, logger.FieldScanID, id)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
