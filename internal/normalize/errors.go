package normalize

import (
	"errors"
	"fmt"
)

// ValidationError reports the first rule a submission violates. Its message is
// meant for end-user display; the caller maps it to a 4xx response. Anything
// else escaping Normalize is an unclassified fault and belongs in the 5xx
// bucket.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func failf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
