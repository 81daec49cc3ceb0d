package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// HTTPStatusFromError maps a negotiation error to the corresponding HTTP
// status code. Every GateError kind has exactly one status; anything else
// is an internal server error.
func HTTPStatusFromError(err error) int {
	var gateErr *api.GateError
	if !errors.As(err, &gateErr) {
		return http.StatusInternalServerError
	}
	switch gateErr.Kind {
	case api.ErrorKindBadMethod:
		return http.StatusMethodNotAllowed
	case api.ErrorKindTimeParse, api.ErrorKindURIParse:
		return http.StatusBadRequest
	case api.ErrorKindNoRoute, api.ErrorKindNoMemento:
		return http.StatusNotFound
	case api.ErrorKindProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes a plain-text error response in the form
// "<status>\n<message>\n".
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "%d\n%s\n", status, message)
}

// WriteNegotiationError maps err to a status and writes the error body.
// The message of unknown errors is masked; clients only ever see the
// messages of typed negotiation errors.
func WriteNegotiationError(w http.ResponseWriter, err error) {
	status := HTTPStatusFromError(err)
	var gateErr *api.GateError
	if errors.As(err, &gateErr) {
		WriteError(w, status, gateErr.Message)
		return
	}
	WriteError(w, status, "internal server error")
}
