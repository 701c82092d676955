package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootcamp-landing/registrations-api/internal/types"
)

var noopLogger = slog.New(slog.DiscardHandler)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteJSON(w, http.StatusCreated, OK("done")))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"done"}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		lang      string
		wantCode  int
		wantError string
		wantField int
	}{
		{
			name:      "single field validation in arabic",
			err:       &types.ValidationError{Fields: []types.FieldError{{Field: "email", Rule: "email"}}},
			wantCode:  http.StatusBadRequest,
			wantError: "البريد الإلكتروني غير صحيح",
			wantField: 1,
		},
		{
			name: "multi field validation in english",
			err: &types.ValidationError{Fields: []types.FieldError{
				{Field: "name", Rule: "min"},
				{Field: "phone", Rule: "min"},
			}},
			lang:      "en",
			wantCode:  http.StatusBadRequest,
			wantError: "Please check the highlighted fields",
			wantField: 2,
		},
		{
			name:      "authorization",
			err:       &types.AuthorizationError{Reason: "token has expired"},
			wantCode:  http.StatusUnauthorized,
			wantError: "غير مصرح",
		},
		{
			name:      "storage",
			err:       &types.StorageError{Op: "list registrations", Err: errors.New("connection refused")},
			lang:      "en",
			wantCode:  http.StatusInternalServerError,
			wantError: "Something went wrong, please try again",
		},
		{
			name:      "unknown",
			err:       errors.New("boom"),
			wantCode:  http.StatusInternalServerError,
			wantError: "حدث خطأ، يرجى المحاولة مرة أخرى",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/"
			if tt.lang != "" {
				target = "/?lang=" + tt.lang
			}
			r := httptest.NewRequest(http.MethodGet, target, nil)
			w := httptest.NewRecorder()

			WriteError(w, r, noopLogger, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Len(t, resp.Fields, tt.wantField)
		})
	}
}

func TestWriteError_DoesNotLeakCause(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteError(w, r, noopLogger, &types.StorageError{Op: "create registration", Err: errors.New("pq: password authentication failed")})

	assert.NotContains(t, w.Body.String(), "pq:")
}
