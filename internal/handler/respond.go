package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campdir/campdir-api/internal/apperr"
)

// dataResponse is the standard success envelope.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// listResponse is the success envelope for collections.
type listResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataResponse{Success: true, Data: data})
}

// writeList always serializes the collection as a JSON array, never null.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(items), Data: items})
}

// writeError is the single place application errors become HTTP responses.
// Handlers never map kinds to statuses themselves and never expose raw
// error details to clients.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	status := statusForKind(appErr.Kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", appErr)
	}

	writeJSON(w, status, errorResponse{Success: false, Error: appErr.Message})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindDuplicate, apperr.KindInvalidToken:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindBadID, apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes the JSON request body into v, writing the error
// response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
