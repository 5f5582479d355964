package tracker

import "fmt"

// SubmitError is a structured tracker rejection carrying the HTTP status
// and response body. 429 and 5xx are transient; other 4xx are terminal
// for the target.
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("tracker returned HTTP %d: %s", e.Status, e.Message)
}

// Retryable reports whether the failure may clear on retry.
func (e *SubmitError) Retryable() bool {
	return e.Status == 429 || e.Status >= 500
}
