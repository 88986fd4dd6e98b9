package arclink

import "fmt"

// apiError represents a non-200 response from the catalog service.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("arclink: %s (status %d)", e.Message, e.StatusCode)
}
