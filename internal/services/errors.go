package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnreachable       = errors.New("daemon unreachable")
	ErrTransient         = errors.New("transient failure")
	ErrTimeout           = errors.New("timeout")
	ErrMalformedResponse = errors.New("malformed response")
	ErrConfiguration     = errors.New("configuration error")
	ErrValidation        = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether err describes a condition the conversion client
// degrades into a canned result instead of surfacing to the caller.
func Recoverable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrConfiguration), errors.Is(err, ErrValidation):
		return false
	default:
		return true
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
