package errors

import "fmt"

// Kind tags a ToolError with the category of failure.
type Kind string

const (
	KindConfiguration Kind = "CONFIGURATION_FAILED"
	KindScan          Kind = "SCAN_FAILED"
	KindWrite         Kind = "WRITE_FAILED"
	KindGeneration    Kind = "GENERATION_FAILED"
)

// ToolError is the single error type returned by the orchestrator.
//
// It carries a kind tag and a message built from the inner failure. It does
// not unwrap: callers branch on Kind or use errors.Is with a category
// sentinel.
type ToolError struct {
	Kind    Kind
	Message string
	Hints   []string
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Is reports whether target is the category sentinel for this error's kind.
func (e *ToolError) Is(target error) bool {
	switch e.Kind {
	case KindConfiguration:
		return target == ErrConfiguration
	case KindScan:
		return target == ErrScan
	case KindWrite:
		return target == ErrWrite
	}
	return false
}

// Classify converts err into a *ToolError. The kind is taken from the marks
// on err; fallback is used when none is present. An err that already is a
// *ToolError is returned unchanged. Returns nil for a nil err.
func Classify(err error, fallback Kind, context string) error {
	if err == nil {
		return nil
	}
	var te *ToolError
	if As(err, &te) {
		return te
	}

	kind := fallback
	switch {
	case Is(err, ErrConfiguration):
		kind = KindConfiguration
	case Is(err, ErrScan):
		kind = KindScan
	case Is(err, ErrWrite):
		kind = KindWrite
	}

	msg := err.Error()
	if context != "" {
		msg = context + ": " + msg
	}
	return &ToolError{
		Kind:    kind,
		Message: msg,
		Hints:   GetAllHints(err),
	}
}

// KindOf returns the kind of the first *ToolError in err's chain, or the
// empty Kind if there is none.
func KindOf(err error) Kind {
	var te *ToolError
	if As(err, &te) {
		return te.Kind
	}
	return ""
}
