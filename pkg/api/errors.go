package api

import "fmt"

// ErrorKind categorizes a negotiation failure. Each kind maps 1:1 to an
// HTTP status at the transport boundary.
type ErrorKind string

const (
	// ErrorKindBadMethod rejects request methods other than GET and HEAD.
	ErrorKindBadMethod ErrorKind = "bad_method"

	// ErrorKindTimeParse marks an unparseable Accept-Datetime value.
	ErrorKindTimeParse ErrorKind = "time_parse"

	// ErrorKindURIParse marks a request path that does not yield a valid
	// resource URI.
	ErrorKindURIParse ErrorKind = "uri_parse"

	// ErrorKindNoRoute means no registered provider pattern matched the
	// resource URI for the requested flow.
	ErrorKindNoRoute ErrorKind = "no_route"

	// ErrorKindProvider marks a backend fetch failure. Retryable by the
	// client; the gateway performs no retries of its own.
	ErrorKindProvider ErrorKind = "provider"

	// ErrorKindNoMemento means the provider knows no snapshot for a
	// resource where a point answer was required.
	ErrorKindNoMemento ErrorKind = "no_memento"
)

// GateError is a structured negotiation error. All failures that reach a
// client are of this type; anything else surfacing at the transport
// boundary is treated as an internal server error.
type GateError struct {
	Kind    ErrorKind
	Message string
	Err     error // wrapped cause, may be nil
}

// Error implements the error interface.
func (e *GateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause for errors.Is/As chains.
func (e *GateError) Unwrap() error { return e.Err }

// NewBadMethodError creates a GateError for a rejected request method.
func NewBadMethodError(method string) *GateError {
	return &GateError{
		Kind:    ErrorKindBadMethod,
		Message: fmt.Sprintf("request method %q not allowed", method),
	}
}

// NewTimeParseError creates a GateError for an unparseable Accept-Datetime.
func NewTimeParseError(value string, err error) *GateError {
	return &GateError{
		Kind:    ErrorKindTimeParse,
		Message: fmt.Sprintf("cannot parse Accept-Datetime %q", value),
		Err:     err,
	}
}

// NewURIParseError creates a GateError for an invalid resource path.
func NewURIParseError(path string, err error) *GateError {
	return &GateError{
		Kind:    ErrorKindURIParse,
		Message: fmt.Sprintf("cannot parse requested resource %q", path),
		Err:     err,
	}
}

// NewNoRouteError creates a GateError for a resource no provider serves.
func NewNoRouteError(flow, uri string) *GateError {
	return &GateError{
		Kind:    ErrorKindNoRoute,
		Message: fmt.Sprintf("no %s provider matches %s", flow, uri),
	}
}

// NewProviderError creates a GateError wrapping a backend fetch failure.
func NewProviderError(provider string, err error) *GateError {
	return &GateError{
		Kind:    ErrorKindProvider,
		Message: fmt.Sprintf("provider %q fetch failed", provider),
		Err:     err,
	}
}

// NewNoMementoError creates a GateError for a resource with no snapshots.
func NewNoMementoError(uri string) *GateError {
	return &GateError{
		Kind:    ErrorKindNoMemento,
		Message: fmt.Sprintf("no memento known for %s", uri),
	}
}
