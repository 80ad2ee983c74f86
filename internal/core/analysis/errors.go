package analysis

import (
	"errors"
	"fmt"
)

// ErrUnknownAnalyzer is returned by Registry.Lookup for ids nobody registered.
var ErrUnknownAnalyzer = errors.New("unknown analyzer")

// ErrNonFinite marks a result holding NaN or an infinity, which JSON cannot
// carry.
var ErrNonFinite = errors.New("result is not a finite number")

// ValidationError reports input that cannot be analyzed: missing ids, dangling
// edge references, or a graph below an analyzer's minimum size. It is raised
// before any computation starts.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AnalysisError wraps a failure that happened while computing, after the input
// was accepted.
type AnalysisError struct {
	Analyzer string
	Err      error
}

func (e *AnalysisError) Error() string {
	if e.Analyzer == "" {
		return fmt.Sprintf("analysis failed: %v", e.Err)
	}
	return fmt.Sprintf("%s analysis failed: %v", e.Analyzer, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
