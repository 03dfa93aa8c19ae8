package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// Wrap attaches cause to exc while keeping both visible to errors.Is.
func Wrap(exc *Exception, cause error) error {
	if cause == nil {
		return exc
	}
	return fmt.Errorf("%w: %w", exc, cause)
}

// Wrapf attaches a formatted detail to exc.
func Wrapf(exc *Exception, format string, args ...any) error {
	return fmt.Errorf("%w: %s", exc, fmt.Sprintf(format, args...))
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
