// Package registration contains the public HTTP handler for the landing
// page form.
//
// Handlers here use the factory pattern: New(service) is called once when
// the route is registered and returns the http.HandlerFunc that serves
// every request, closing over the service.
package registration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/bootcamp-landing/registrations-api/internal/i18n"
	intake "github.com/bootcamp-landing/registrations-api/internal/registration"
	"github.com/bootcamp-landing/registrations-api/internal/types"
	"github.com/bootcamp-landing/registrations-api/internal/utils/response"
)

// maxBodyBytes caps the form payload; the free-text message is the only
// field that can grow.
const maxBodyBytes = 64 << 10

// Submitter is the intake operation the handler depends on.
type Submitter interface {
	Submit(ctx context.Context, in types.RegistrationInput) (intake.Result, error)
}

// CreateResponse is the 201 body.
type CreateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/registrations
//
// Request body (JSON):
//
//	{ "name": "Ahmad", "email": "ahmad@test.com", "phone": "0791234567",
//	  "experience": "beginner", "city": "amman" }
//
// Success response (201 Created):
//
//	{ "success": true, "message": "تم التسجيل بنجاح!", "id": 7 }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Submitter, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tag := i18n.ResolveTag(r)
		logger.DebugContext(ctx, "creating a registration")

		var in types.RegistrationInput
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(i18n.T(tag, i18n.MsgEmptyBody)))
			return
		}
		if err != nil {
			logger.InfoContext(ctx, "malformed registration body", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(i18n.T(tag, i18n.MsgInvalidBody)))
			return
		}

		res, err := svc.Submit(ctx, in)
		if err != nil {
			response.WriteError(w, r, logger, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, CreateResponse{
			Success: res.Success,
			Message: i18n.T(tag, i18n.MsgRegistrationCreated),
			ID:      res.ID,
		})
	}
}
