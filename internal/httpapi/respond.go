// Package httpapi implements the JSON response envelope shared by every
// handler and the mapping from domain errors to HTTP status codes.
//
// Every response has the shape:
//
//	{ "success": bool, "message"?: string, "<resource>"?: ..., "error"?: string }
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"gigboard/marketplace-service/internal/model"
)

// Body is the JSON envelope written to every response.
type Body map[string]any

// WriteJSON writes body as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// OK writes a 200 envelope carrying one resource under key.
func OK(w http.ResponseWriter, key string, v any) {
	WriteJSON(w, http.StatusOK, Body{"success": true, key: v})
}

// Created writes a 201 envelope carrying one resource under key.
func Created(w http.ResponseWriter, key string, v any) {
	WriteJSON(w, http.StatusCreated, Body{"success": true, key: v})
}

// Message writes a 200 envelope with only a human-readable message.
func Message(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, Body{"success": true, "message": msg})
}

// Error writes a failure envelope with the given status code.
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Body{"success": false, "error": msg})
}

// WriteServiceError maps a domain error to the right HTTP status:
// validation → 400, unauthorized → 401, forbidden → 403, not found → 404,
// anything else → 500. Postgres not-null violations enrich the 500 message
// with the offending column.
func WriteServiceError(w http.ResponseWriter, err error) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		Error(w, http.StatusBadRequest, vErr.Msg)
		return
	}

	switch {
	case errors.Is(err, model.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, model.ErrForbidden):
		Error(w, http.StatusForbidden, "you do not have permission to modify this resource")
	case errors.Is(err, model.ErrNotFound):
		Error(w, http.StatusNotFound, "record not found")
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23502" {
			Error(w, http.StatusInternalServerError,
				fmt.Sprintf("database error: null value in column %q", pgErr.ColumnName))
			return
		}
		slog.Error("unhandled service error", "err", err)
		Error(w, http.StatusInternalServerError, "database error")
	}
}
