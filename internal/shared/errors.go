package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// API and service errors
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrRetriesExhausted = fmt.Errorf("retry attempts exhausted")

	// Retrieval errors
	ErrUnsupportedShape = fmt.Errorf("unsupported item shape")
	ErrUnknownInputType = fmt.Errorf("unknown input type")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
)
