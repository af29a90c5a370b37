package decompose

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyMissing indicates OpenAI mode is selected without an API key
	ErrAPIKeyMissing = errors.New("OpenAI API key not configured")
	// ErrBackendURLMissing indicates backend mode is selected without a base URL
	ErrBackendURLMissing = errors.New("backend API URL not configured")
	// ErrInvalidMode indicates the configured API mode is neither backend nor openai
	ErrInvalidMode = errors.New("invalid API mode")
	// ErrDecompositionFormat indicates the model reply carried no parseable decomposition
	ErrDecompositionFormat = errors.New("invalid decomposition response format")
	// ErrNoChoicesInResponse indicates the chat completion carried no choices
	ErrNoChoicesInResponse = errors.New("no choices in response")
)

// APIError represents a transport failure reported by a decomposition
// backend. Message carries the upstream-provided text when one was available.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// newAPIError builds an APIError from a non-2xx response body, preferring
// the upstream message over a generic status-code error. Both the backend's
// flat {message} shape and OpenAI's nested {error:{message}} shape are
// understood.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else if payload.Error.Message != "" {
			apiErr.Message = payload.Error.Message
		}
	}
	return apiErr
}
