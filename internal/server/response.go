package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// engineErrors maps engine sentinels to the status and code a client sees.
// Anything else is an internal error.
var engineErrors = []struct {
	err    error
	status int
	code   string
}{
	{sched.ErrInvalidTask, http.StatusBadRequest, "invalid_task"},
	{sched.ErrInvalidConfiguration, http.StatusBadRequest, "invalid_configuration"},
	{sched.ErrUnknownPolicy, http.StatusBadRequest, "unknown_policy"},
	{sched.ErrTooLarge, http.StatusRequestEntityTooLarge, "too_large"},
	{workload.ErrBadCount, http.StatusBadRequest, "bad_count"},
}

// classify returns the status and API error for err.
func classify(err error) (int, *APIError) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return http.StatusRequestEntityTooLarge, &APIError{Code: "too_large", Message: err.Error()}
	}
	for _, e := range engineErrors {
		if errors.Is(err, e.err) {
			return e.status, &APIError{Code: e.code, Message: err.Error()}
		}
	}
	return http.StatusInternalServerError, &APIError{Code: "internal", Message: err.Error()}
}

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondOK writes a success response with the standard envelope.
func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil)
}

// respondError writes an error response with the standard envelope.
func respondError(w http.ResponseWriter, reqID string, status int, apiErr *APIError) {
	respondJSON(w, status, reqID, nil, apiErr)
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, apiErr *APIError) {
	resp := Response{
		RequestID: reqID,
		Timestamp: time.Now().UTC(),
		Data:      data,
		Error:     apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
