package gemini

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-success response from the Generative Language API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini: %s (%d): %s", e.Status, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini: status %d: %s", e.StatusCode, e.Message)
}

// Quota reports whether the error represents rate or resource exhaustion.
func (e *APIError) Quota() bool {
	if e.StatusCode == 429 {
		return true
	}
	return strings.EqualFold(e.Status, "RESOURCE_EXHAUSTED")
}

// IsQuota classifies an error as a quota-class failure. Structured status
// codes are checked first; the message scan is a heuristic carried over
// from the upstream API's loosely specified error reporting.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Quota() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource")
}
