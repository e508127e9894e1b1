package service

import "time"

// invalidRequestError signals a client input fault for 400 mapping. The
// engine is never invoked for these.
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return e.msg }

// ErrInvalidRequest constructs an invalid-request error. Exported so
// collaborating packages (e.g. recommend) report input faults with the
// same HTTP mapping.
func ErrInvalidRequest(msg string) error { return invalidRequestError{msg: msg} }

// IsInvalidRequest reports whether err is a client input fault (return 400).
func IsInvalidRequest(err error) bool {
	_, ok := err.(invalidRequestError)
	return ok
}

// overloadedError signals admission rejection for 429 mapping. Safe to
// retry with backoff.
type overloadedError struct{ reason string }

func (e overloadedError) Error() string { return "overloaded: " + e.reason }

// ErrOverloaded constructs an overloaded error.
func ErrOverloaded(reason string) error { return overloadedError{reason: reason} }

// IsOverloaded reports whether err indicates backpressure (return 429).
func IsOverloaded(err error) bool {
	_, ok := err.(overloadedError)
	return ok
}

// drainingError signals the service stopped admitting work for 503 mapping.
type drainingError struct{}

func (drainingError) Error() string { return "service is draining" }

// ErrDraining constructs a draining error.
func ErrDraining() error { return drainingError{} }

// IsDraining reports whether err was raised during shutdown drain (return 503).
func IsDraining(err error) bool {
	_, ok := err.(drainingError)
	return ok
}

// timeoutError signals the per-request deadline elapsed for 504 mapping.
type timeoutError struct{ after time.Duration }

func (e timeoutError) Error() string { return "generation timed out after " + e.after.String() }

// ErrTimeout constructs a per-request timeout error.
func ErrTimeout(after time.Duration) error { return timeoutError{after: after} }

// IsTimeout reports whether err is a per-request timeout (return 504).
func IsTimeout(err error) bool {
	_, ok := err.(timeoutError)
	return ok
}

// inferenceError wraps an engine-internal fault for 500 mapping. Always
// recoverable at request scope.
type inferenceError struct{ err error }

func (e inferenceError) Error() string { return "inference failed: " + e.err.Error() }

func (e inferenceError) Unwrap() error { return e.err }

// ErrInference wraps an engine fault.
func ErrInference(err error) error { return inferenceError{err: err} }

// IsInference reports whether err is an engine-internal fault (return 500).
func IsInference(err error) bool {
	_, ok := err.(inferenceError)
	return ok
}
