// Package admin contains the HTTP handlers of the admin panel: login, and
// the token-protected list, count, and delete calls.
//
// The admin UI keeps the token returned by login and sends it back on
// every call, normally as "Authorization: Bearer <token>".
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bootcamp-landing/registrations-api/internal/auth"
	"github.com/bootcamp-landing/registrations-api/internal/i18n"
	"github.com/bootcamp-landing/registrations-api/internal/types"
	"github.com/bootcamp-landing/registrations-api/internal/utils/response"
)

// Authenticator is the access gate used by Login.
type Authenticator interface {
	Login(ctx context.Context, username, password string) auth.LoginResult
}

// Querier is the token-protected registrations API.
type Querier interface {
	List(ctx context.Context, token string) ([]types.Registration, error)
	Count(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string, id int64) error
}

// LoginResponse keeps the {success, token?, error?} shape the admin UI
// expects. ExpiresAt lets the UI drop a stale token before the server
// rejects it.
type LoginResponse struct {
	Success   bool       `json:"success"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// TokenFromRequest returns the admin token from, in order, the
// Authorization bearer header, the X-Admin-Token header, or the token
// query parameter. Empty when none is present.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if h := r.Header.Get("X-Admin-Token"); h != "" {
		return strings.TrimSpace(h)
	}
	return r.URL.Query().Get("token")
}

// ─────────────────────────────────────────────────────────────────────────────
// Login handles POST /api/admin/login
//
// A wrong username or password is not an HTTP error: the response is
// 200 with success=false, like a successful login, so the UI can show the
// message inline.
//
//	{ "success": true,  "token": "eyJ...", "expiresAt": "..." }
//	{ "success": false, "error": "بيانات الدخول غير صحيحة" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Login(gate Authenticator, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := i18n.ResolveTag(r)

		var req types.LoginRequest
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(i18n.T(tag, i18n.MsgEmptyBody)))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(i18n.T(tag, i18n.MsgInvalidBody)))
			return
		}

		res := gate.Login(r.Context(), req.Username, req.Password)
		if !res.Success {
			response.WriteJSON(w, http.StatusOK, LoginResponse{
				Success: false,
				Error:   i18n.T(tag, res.Error),
			})
			return
		}

		expiresAt := res.ExpiresAt
		response.WriteJSON(w, http.StatusOK, LoginResponse{
			Success:   true,
			Token:     res.Token,
			ExpiresAt: &expiresAt,
		})
	}
}

// List handles GET /api/admin/registrations and returns a JSON array of
// every registration, oldest first. Returns [] (not null) when empty.
func List(svc Querier, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context(), TokenFromRequest(r))
		if err != nil {
			response.WriteError(w, r, logger, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, rows)
	}
}

// Count handles GET /api/admin/registrations/count.
func Count(svc Querier, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.Count(r.Context(), TokenFromRequest(r))
		if err != nil {
			response.WriteError(w, r, logger, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, CountResponse{Count: n})
	}
}

// Delete handles DELETE /api/admin/registrations/{id}. Deleting an id that
// does not exist still answers {"success": true}.
func Delete(svc Querier, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(i18n.T(i18n.ResolveTag(r), i18n.MsgInvalidID)))
			return
		}

		if err := svc.Delete(r.Context(), TokenFromRequest(r), id); err != nil {
			response.WriteError(w, r, logger, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, response.OK(""))
	}
}
