package ai

import "fmt"

// RequestError wraps any failure of the remote call: transport, auth,
// or a remote-side error. Auth and transient failures are deliberately
// not distinguished in the message; the underlying error is preserved
// for unwrapping.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
