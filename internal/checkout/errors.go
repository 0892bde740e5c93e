package checkout

import (
	"errors"
	"fmt"

	"eventgrid/internal/external"
)

// Validation errors. All of them fail fast, before any network call.
var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidItem  = errors.New("cart item has no ticket type")
	ErrMixedEvents  = errors.New("cart items reference more than one event")
	ErrInvalidPhone = errors.New("invalid phone number, use format 2547XXXXXXXX")
)

// ErrMalformedResponse marks a 2xx upstream response without the fields
// the workflow needs (e.g. a created order with no id).
var ErrMalformedResponse = errors.New("malformed upstream response")

// ErrServiceUnavailable marks an upstream 5xx. The outage is treated as
// temporary; the user may retry.
var ErrServiceUnavailable = errors.New("ticketing service unavailable")

// RejectedError is an upstream 4xx. Message carries the structured server
// message verbatim when one was present.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("order rejected (status %d)", e.StatusCode)
}

// TransportError wraps a network-level failure: no usable response was
// received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// mapUpstreamError translates client errors into the checkout taxonomy.
func mapUpstreamError(err error) error {
	var se *external.StatusError
	if errors.As(err, &se) {
		if se.StatusCode >= 500 {
			return fmt.Errorf("%w: status %d", ErrServiceUnavailable, se.StatusCode)
		}
		return &RejectedError{StatusCode: se.StatusCode, Message: se.Message}
	}

	if errors.Is(err, external.ErrMalformedResponse) {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &TransportError{Err: err}
}
