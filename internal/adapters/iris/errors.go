package iris

import "fmt"

// apiError represents a non-200 response from the availability service.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("iris: %s (status %d)", e.Message, e.StatusCode)
}
