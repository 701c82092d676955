package admin

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/bootcamp-landing/registrations-api/internal/auth"
	"github.com/bootcamp-landing/registrations-api/internal/types"
)

var noopLogger = slog.New(slog.DiscardHandler)

type fakeQuerier struct {
	deletedToken string
	deletedID    int64
	err          error
}

func (f *fakeQuerier) List(context.Context, string) ([]types.Registration, error) {
	return []types.Registration{}, f.err
}

func (f *fakeQuerier) Count(context.Context, string) (int64, error) { return 0, f.err }

func (f *fakeQuerier) Delete(_ context.Context, token string, id int64) error {
	f.deletedToken, f.deletedID = token, id
	return f.err
}

type fakeGate struct{ res auth.LoginResult }

func (f fakeGate) Login(context.Context, string, string) auth.LoginResult { return f.res }

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header map[string]string
		want   string
	}{
		{"bearer", "/", map[string]string{"Authorization": "Bearer abc"}, "abc"},
		{"bearer lowercase scheme", "/", map[string]string{"Authorization": "bearer abc"}, "abc"},
		{"basic is ignored", "/", map[string]string{"Authorization": "Basic abc"}, ""},
		{"admin header", "/", map[string]string{"X-Admin-Token": "xyz"}, "xyz"},
		{"bearer beats header", "/", map[string]string{"Authorization": "Bearer abc", "X-Admin-Token": "xyz"}, "abc"},
		{"query", "/?token=q", nil, "q"},
		{"none", "/", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, TokenFromRequest(r))
		})
	}
}

func TestDelete_PassesIDAndToken(t *testing.T) {
	q := &fakeQuerier{}
	r := chi.NewRouter()
	r.Delete("/registrations/{id}", Delete(q, noopLogger))

	req := httptest.NewRequest(http.MethodDelete, "/registrations/42", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), q.deletedID)
	assert.Equal(t, "tok", q.deletedToken)
}

func TestList_Unauthorized(t *testing.T) {
	q := &fakeQuerier{err: &types.AuthorizationError{Reason: "invalid token"}}

	w := httptest.NewRecorder()
	List(q, noopLogger)(w, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Not authorized"}`, w.Body.String())
}

func TestLogin_LocalizesFailure(t *testing.T) {
	h := Login(fakeGate{res: auth.LoginResult{Success: false, Error: "Invalid login credentials"}}, noopLogger)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"a","password":"b"}`))
	req.Header.Set("Accept-Language", "en")
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid login credentials"}`, w.Body.String())
}
