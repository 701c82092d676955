// Package auth is the admin access gate: it checks the configured
// credentials and mints the signed, expiring token that every admin call
// must present.
package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bootcamp-landing/registrations-api/internal/config"
	"github.com/bootcamp-landing/registrations-api/internal/i18n"
	"github.com/bootcamp-landing/registrations-api/internal/metrics"
	"github.com/bootcamp-landing/registrations-api/internal/types"
)

// LoginResult mirrors the {success, token, error} response of the login
// call. Error holds an i18n message key and is set only on failure.
type LoginResult struct {
	Success   bool
	Token     string
	ExpiresAt time.Time
	Error     string
}

type Gate struct {
	username     []byte
	passwordHash []byte
	tokens       *TokenService
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func NewGate(cfg config.Admin, logger *slog.Logger, m *metrics.Metrics) *Gate {
	return &Gate{
		username:     []byte(cfg.Username),
		passwordHash: []byte(cfg.PasswordHash),
		tokens:       NewTokenService(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenTTL),
		logger:       logger,
		metrics:      m,
	}
}

// Login compares the credentials with the configured admin account. A
// mismatch is a normal result, not an error, and never says which of the
// two fields was wrong.
func (g *Gate) Login(ctx context.Context, username, password string) LoginResult {
	userOK := subtle.ConstantTimeCompare([]byte(username), g.username) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passErr := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))

	if !userOK || passErr != nil {
		g.metrics.IncrementAdminLogin(false)
		g.logger.WarnContext(ctx, "admin login rejected")
		return LoginResult{Success: false, Error: i18n.MsgInvalidCredentials}
	}

	token, claims, err := g.tokens.Issue(username)
	if err != nil {
		g.metrics.IncrementAdminLogin(false)
		g.logger.ErrorContext(ctx, "failed to sign admin token", slog.String("error", err.Error()))
		return LoginResult{Success: false, Error: i18n.MsgInternal}
	}

	g.metrics.IncrementAdminLogin(true)
	g.logger.InfoContext(ctx, "admin logged in", slog.String("jti", claims.ID))

	return LoginResult{
		Success:   true,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}

// Authorize validates a token presented on an admin call.
func (g *Gate) Authorize(token string) (*Claims, error) {
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, &types.AuthorizationError{Reason: err.Error()}
	}
	if subtle.ConstantTimeCompare([]byte(claims.Subject), g.username) != 1 {
		return nil, &types.AuthorizationError{Reason: "unknown subject"}
	}
	return claims, nil
}
