package hirez

import "fmt"

// TransportError reports a non-2xx HTTP response from the vendor.
type TransportError struct {
	StatusCode int
	Method     string
	URL        string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request returned HTTP %d, using %s -> %s", e.StatusCode, e.Method, e.URL)
}

// DecodeError reports a response body that was empty, not valid JSON, or
// missing a field the mapping requires.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("failed to decode response: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError reports a payload that decoded cleanly but whose ret_msg signals a
// vendor-side exception.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// UnsupportedOperationError reports an operation known to be non-functional
// against a given endpoint. It is returned before any network call is made.
type UnsupportedOperationError struct {
	Method   string
	Endpoint Endpoint
	Reason   string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s is not supported on endpoint %s: %s", e.Method, e.Endpoint, e.Reason)
}
