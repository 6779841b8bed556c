// Package response writes the JSON envelopes used by every handler.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/logger"
	"github.com/treasuryofflair/flairmarket/pkg/orm"
)

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends a 200 response with the payload as-is (no envelope).
func JSON(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, data)
}

// Created sends a 201 response with the payload as-is.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, data)
}

// Message sends a status code with a {"message": ...} body.
func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, map[string]string{"message": message})
}

// Paginated sends the {data, meta} envelope used by listing endpoints.
func Paginated(w http.ResponseWriter, data interface{}, meta orm.Pagination) {
	write(w, http.StatusOK, map[string]interface{}{
		"data": data,
		"meta": meta,
	})
}

// ValidationError sends a 400 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, map[string]interface{}{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Error maps err through the apperr taxonomy. Business-rule failures keep
// their specific status and message; anything unexpected collapses to a
// generic 500 with the full detail logged server-side only.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	Message(w, status, apperr.MessageOf(err))
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Message(w, http.StatusUnauthorized, "Unauthorized")
}
