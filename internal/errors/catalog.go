// Package errors holds the typed errors shared by the catalog client, the
// search orchestrator and the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// Kind classifies a catalog failure.
type Kind int

const (
	// KindTransport covers network, DNS, timeout and non-2xx HTTP failures.
	KindTransport Kind = iota + 1
	// KindMalformed means the response could not be parsed into the expected shape.
	KindMalformed
	// KindNotFound means the service answered but reported no matches.
	KindNotFound
	// KindValidation means the request was rejected before any network call.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// CatalogError is returned by every catalog operation that fails.
type CatalogError struct {
	Kind Kind
	// Message is the service-provided text for NotFound, or a short description otherwise.
	Message string
	Err     error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("catalog %s: %s", e.Kind, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network-level failure.
func NewTransportError(message string, err error) *CatalogError {
	return &CatalogError{Kind: KindTransport, Message: message, Err: err}
}

// NewMalformedError wraps a decode or shape validation failure.
func NewMalformedError(message string, err error) *CatalogError {
	return &CatalogError{Kind: KindMalformed, Message: message, Err: err}
}

// NewNotFoundError records the service's own "no match" text, which may be empty.
func NewNotFoundError(serviceMessage string) *CatalogError {
	return &CatalogError{Kind: KindNotFound, Message: serviceMessage}
}

// NewValidationError rejects input before it reaches the network.
func NewValidationError(message string) *CatalogError {
	return &CatalogError{Kind: KindValidation, Message: message}
}

// KindOf returns the Kind of the first CatalogError in err's chain.
func KindOf(err error) (Kind, bool) {
	var catErr *CatalogError
	if stdErrors.As(err, &catErr) {
		return catErr.Kind, true
	}
	return 0, false
}

// ServiceMessage returns the Message of the first CatalogError in err's chain.
func ServiceMessage(err error) string {
	var catErr *CatalogError
	if stdErrors.As(err, &catErr) {
		return catErr.Message
	}
	return ""
}

// IsNotFound reports whether err is a NotFound CatalogError (even when wrapped).
func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}

// IsTransport reports whether err is a Transport CatalogError (even when wrapped).
func IsTransport(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindTransport
}

// IsMalformed reports whether err is a Malformed CatalogError (even when wrapped).
func IsMalformed(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindMalformed
}

// IsValidation reports whether err is a Validation CatalogError (even when wrapped).
func IsValidation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindValidation
}
