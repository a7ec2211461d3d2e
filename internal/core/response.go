// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// envelope is the wire shape of every response: success flag, human message,
// then whatever payload fields the handler attaches.
type envelope map[string]any

// WriteJSON writes payload with the given status. Failures after the header
// has gone out can only be logged.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// OK writes a 200 envelope. Extra payload fields are merged alongside
// success/message.
func OK(w http.ResponseWriter, message string, fields map[string]any) {
	writeEnvelope(w, http.StatusOK, true, message, fields)
}

// Created writes a 201 envelope.
func Created(w http.ResponseWriter, message string, fields map[string]any) {
	writeEnvelope(w, http.StatusCreated, true, message, fields)
}

func BadRequest(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusBadRequest, false, message, nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusUnauthorized, false, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusForbidden, false, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	writeEnvelope(w, http.StatusNotFound, false, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "internal server error"
	}
	writeEnvelope(w, http.StatusInternalServerError, false, message, nil)
}

func writeEnvelope(
	w http.ResponseWriter,
	status int,
	success bool,
	message string,
	fields map[string]any,
) {
	body := envelope{
		"success": success,
		"message": message,
	}
	for k, v := range fields {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

// JSONError maps a service error onto the envelope. AppErrors carry their own
// status and message; anything unrecognized becomes a 500 with a generic
// message so internals never leak to clients.
func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		body := envelope{
			"success": false,
			"message": appErr.Message,
		}
		var fieldErrs FieldErrors
		if errors.As(err, &fieldErrs) {
			body["errors"] = fieldErrs
		}
		WriteJSON(w, appErr.Status, body)
		return
	}

	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		WriteJSON(w, http.StatusBadRequest, envelope{
			"success": false,
			"message": fieldErrs.Error(),
			"errors":  fieldErrs,
		})
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(w, "resource not found")
	case errors.Is(err, ErrValidation):
		BadRequest(w, err.Error())
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(w, "authentication required")
	case errors.Is(err, ErrForbidden):
		Forbidden(w, "insufficient permissions")
	default:
		slog.Error("unhandled service error", "error", err)
		InternalServerError(w, "")
	}
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields and
// oversized bodies.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return ValidationError("invalid request body")
	}

	return nil
}
