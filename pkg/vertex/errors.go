package vertex

import "fmt"

// AuthError indicates that no credential could be acquired for a request.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("credential acquisition failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransportError indicates that the HTTP exchange itself failed: connection
// refused, timeout, broken pipe. No response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// URLError indicates a malformed request URL. It is returned before any
// network I/O happens and carries the offending string.
type URLError struct {
	URL string
	Err error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *URLError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response. The body is preserved verbatim so the
// remote service's own error payload is never lost.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// DecodeError indicates that a response body did not match the expected JSON
// shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
