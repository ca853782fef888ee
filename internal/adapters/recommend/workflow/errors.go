package workflow

import (
	"fmt"

	"github.com/bnema/paperswipe/internal/domain"
)

// APIError is a non-zero code reported by the workflow API, either in a
// JSON envelope or through an HTTP error status.
type APIError struct {
	StatusCode int
	Code       int64
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("workflow API error %d (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("workflow API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return domain.ErrTransport
}
