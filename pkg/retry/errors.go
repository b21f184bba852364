package retry

import (
	"context"
	"errors"
	"net"
	"strings"
)

// RetryableError tags a failure as eligible for retry. Wrap the
// underlying cause at the point of failure detection; the executor
// consumes the tag and propagates the original cause unchanged.
type RetryableError struct {
	Err error
}

// Retryable wraps err as a RetryableError. Returns nil if err is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error implements the error interface.
func (e *RetryableError) Error() string {
	return "retryable: " + e.Err.Error()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// statusCoder is satisfied by errors carrying an HTTP-like status.
type statusCoder interface {
	StatusCode() int
}

// coder is satisfied by errors carrying an application error code.
type coder interface {
	Code() string
}

// Built-in transient error codes, matched case-sensitively against the
// Code() of a failure in addition to Policy.RetryableCodes.
var transientCodes = map[string]struct{}{
	"ETIMEDOUT":    {},
	"ECONNRESET":   {},
	"ECONNREFUSED": {},
	"EHOSTUNREACH": {},
	"ENETUNREACH":  {},
	"EPIPE":        {},
	"EAI_AGAIN":    {},
}

// Message substrings that mark a failure as transient. Matched
// case-insensitively. This is a best-effort compatibility shim for
// errors from sources that expose no structured classification; typed
// failures should use RetryableError or the coder/statusCoder
// interfaces instead.
var transientMessages = []string{
	"timeout",
	"timed out",
	"connection refused",
	"connection reset",
	"socket hang up",
	"connection",
	"network",
}

// IsRetryable reports whether err is eligible for retry under the given
// policy. A failure is retryable when it is tagged as a RetryableError,
// carries a recognized transient code, carries an HTTP-like status of
// 429, 408 or 5xx, is a network timeout, or its message matches a known
// transient substring. Everything else is fatal.
func IsRetryable(err error, p Policy) bool {
	if err == nil {
		return false
	}

	var tagged *RetryableError
	if errors.As(err, &tagged) {
		return true
	}

	// Cancellation is a deliberate signal from the caller, never a
	// transient fault (context.DeadlineExceeded would otherwise match
	// the net.Error timeout probe below).
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		status := sc.StatusCode()
		if status == 429 || status == 408 || (status >= 500 && status <= 599) {
			return true
		}
		// A failure that declares a non-transient status is fatal even
		// if its message happens to mention a connection.
		if status >= 400 && status <= 499 {
			return false
		}
	}

	var c coder
	if errors.As(err, &c) {
		code := c.Code()
		if _, ok := transientCodes[code]; ok {
			return true
		}
		if p.hasCode(code) {
			return true
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, s := range transientMessages {
		if strings.Contains(msg, s) {
			return true
		}
	}

	return false
}
