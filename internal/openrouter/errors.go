package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// StatusError is returned when the API answers with a non-2xx status.
// Body holds a bounded snippet of the raw response for diagnosis;
// UpstreamMessage is the API's own error text when the body decodes.
type StatusError struct {
	StatusCode      int
	Body            string
	UpstreamMessage string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openrouter: HTTP %d: %s", e.StatusCode, e.Body)
}

// UnexpectedResponseError is returned when a 2xx body cannot be decoded
// into the expected response shape.
type UnexpectedResponseError struct {
	Err  error
	Body string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("openrouter: unexpected response: %v", e.Err)
}

func (e *UnexpectedResponseError) Unwrap() error { return e.Err }

// IsTimeout reports whether err was caused by the request deadline rather
// than a connection-level failure such as DNS or a refused connection.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
