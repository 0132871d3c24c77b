package analyzer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
)

// ResponseError is returned when the service rejects a request. It is a
// transport-level failure and unrelated to an operation ending in
// StateFailed.
type ResponseError struct {
	StatusCode int

	Err *Error
}

func (e *ResponseError) Error() string {
	text := strconv.Itoa(e.StatusCode) + " " + http.StatusText(e.StatusCode)

	if e.Err != nil {
		if msg := e.Err.Error(); msg != "" {
			text += ": " + msg
		}
	}

	return text
}

func (e *ResponseError) Unwrap() error {
	if e.Err == nil {
		return nil
	}

	return e.Err
}

// IsTransient reports whether err is a network or server side failure that
// a caller may retry. A deadline counts only when the transport reports it,
// an expired caller context is not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var respErr *ResponseError

	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusTooManyRequests || respErr.StatusCode >= 500
	}

	var urlErr *url.Error

	if errors.As(err, &urlErr) {
		return true
	}

	var opErr *net.OpError

	if errors.As(err, &opErr) {
		return true
	}

	// context.DeadlineExceeded satisfies net.Error on its own
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
