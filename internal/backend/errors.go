package backend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSimilarQuestions is returned when the similar-questions endpoint answers 404.
var ErrNoSimilarQuestions = errors.New("no similar questions found")

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error! status: %d", e.Endpoint, e.StatusCode)
}

// Temporary reports whether retrying could help.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// MalformedPayloadError means the backend answered 2xx with a body that is
// not JSON or does not match the expected shape.
type MalformedPayloadError struct {
	Endpoint string
	Problems []string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%s: malformed payload: %s", e.Endpoint, strings.Join(e.Problems, "; "))
}
