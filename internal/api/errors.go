package api

import "fmt"

// SessionExpiredError is returned when the platform answers with a 401,
// meaning the session token is no longer valid and the user has to log in
// again before retrying.
type SessionExpiredError struct{}

func (e *SessionExpiredError) Error() string {
	return "your session has expired, please log in again"
}

// APIError is a non-success response from the platform, either a bad HTTP
// status or an error field embedded in an otherwise successful response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("the server responded with status %d", e.StatusCode)
}

// NetworkError wraps a transport failure: the request could not complete at
// all, so no server-provided message is available.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not reach the server: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// isRetryableError determines if an error should trigger a retry: transport
// failures, rate limiting and server-side errors. Client-side statuses and
// expired sessions never recover by retrying.
func isRetryableError(err error) bool {
	switch typed := err.(type) {
	case *NetworkError:
		return true
	case *APIError:
		return typed.StatusCode == 429 || typed.StatusCode >= 500
	default:
		return false
	}
}
