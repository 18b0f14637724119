package domain

import "fmt"

// TransportError wraps a network or timeout failure on an HTTP call.
// Recoverable: the current cycle is skipped and the loop continues.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError wraps a malformed response body. Same recovery as TransportError.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error during %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExchangeRejection is a non-200 response from the order endpoint. The body is
// kept verbatim; exchange error formats are not modeled further.
type ExchangeRejection struct {
	Status int
	Body   string
}

func (e *ExchangeRejection) Error() string {
	return fmt.Sprintf("exchange rejected order with status %d: %s", e.Status, e.Body)
}
