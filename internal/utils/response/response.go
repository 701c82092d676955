// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here, together with
// the translation of service errors into status codes and localized text.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"github.com/bootcamp-landing/registrations-api/internal/i18n"
	"github.com/bootcamp-landing/registrations-api/internal/types"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the envelope returned for error cases and simple
// acknowledgements. Error responses always look like:
//
//	{ "success": false, "error": "غير مصرح" }
//
// and validation failures add one entry per offending field:
//
//	{ "success": false, "error": "...", "fields": [{ "field": "email", ... }] }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Fields  []FieldMessage `json:"fields,omitempty"`
}

// FieldMessage is a types.FieldError with its localized message.
type FieldMessage struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is the {"success": true} acknowledgement, optionally with a message.
func OK(message string) Response {
	return Response{Success: true, Message: message}
}

// GeneralError wraps a user-facing message into the standard shape.
func GeneralError(message string) Response {
	return Response{Success: false, Error: message}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a *types.ValidationError into a Response with
// one localized message per field, in the language given by tag.
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(tag language.Tag, verr *types.ValidationError) Response {
	p := i18n.Printer(tag)

	fields := make([]FieldMessage, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, FieldMessage{
			Field:   f.Field,
			Rule:    f.Rule,
			Message: p.Sprintf(i18n.FieldMessage(f.Field)),
		})
	}

	msg := p.Sprintf(i18n.MsgValidationFailed)
	if len(fields) == 1 {
		msg = fields[0].Message
	}

	return Response{
		Success: false,
		Error:   msg,
		Fields:  fields,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteError maps a service error onto a status code and a localized body:
//
//	*types.ValidationError    → 400 with per-field messages
//	*types.AuthorizationError → 401 "not authorized"
//	anything else             → 500 generic failure (details only in logs)
//
// ─────────────────────────────────────────────────────────────────────────────
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	tag := i18n.ResolveTag(r)
	ctx := r.Context()

	var verr *types.ValidationError
	if errors.As(err, &verr) {
		logger.InfoContext(ctx, "request failed validation", slog.String("error", err.Error()))
		_ = WriteJSON(w, http.StatusBadRequest, ValidationError(tag, verr))
		return
	}

	var aerr *types.AuthorizationError
	if errors.As(err, &aerr) {
		_ = WriteJSON(w, http.StatusUnauthorized, GeneralError(i18n.T(tag, i18n.MsgUnauthorized)))
		return
	}

	var serr *types.StorageError
	if errors.As(err, &serr) {
		logger.ErrorContext(ctx, "storage failure", slog.String("op", serr.Op), slog.String("error", serr.Err.Error()))
	} else {
		logger.ErrorContext(ctx, "unexpected error", slog.String("error", err.Error()))
	}
	_ = WriteJSON(w, http.StatusInternalServerError, GeneralError(i18n.T(tag, i18n.MsgInternal)))
}
