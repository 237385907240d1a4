package http

import (
	"encoding/json"
	"net/http"
)

// Error kinds are stable, machine-checkable strings; the message is for
// humans and may change.
const (
	kindBadRequest      = "bad_request"
	kindUnauthorized    = "unauthorized"
	kindForbidden       = "forbidden"
	kindNotFound        = "not_found"
	kindConflict        = "conflict"
	kindTooManyRequests = "too_many_requests"
	kindInternal        = "internal_error"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}
