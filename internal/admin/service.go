// Package admin is the token-protected side of the API: list, count, and
// delete registrations. Every call authorizes before it touches the store.
package admin

import (
	"context"
	"log/slog"

	"github.com/bootcamp-landing/registrations-api/internal/auth"
	"github.com/bootcamp-landing/registrations-api/internal/metrics"
	"github.com/bootcamp-landing/registrations-api/internal/storage"
	"github.com/bootcamp-landing/registrations-api/internal/types"
)

// Authorizer validates an admin token. *auth.Gate satisfies it.
type Authorizer interface {
	Authorize(token string) (*auth.Claims, error)
}

type Service struct {
	auth    Authorizer
	store   storage.Storage
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(a Authorizer, store storage.Storage, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{auth: a, store: store, logger: logger, metrics: m}
}

// List returns all registrations, oldest first.
func (s *Service) List(ctx context.Context, token string) ([]types.Registration, error) {
	if err := s.authorize(ctx, token); err != nil {
		return nil, err
	}

	rows, err := s.store.GetRegistrations(ctx)
	if err != nil {
		return nil, &types.StorageError{Op: "list registrations", Err: err}
	}
	return rows, nil
}

func (s *Service) Count(ctx context.Context, token string) (int64, error) {
	if err := s.authorize(ctx, token); err != nil {
		return 0, err
	}

	n, err := s.store.CountRegistrations(ctx)
	if err != nil {
		return 0, &types.StorageError{Op: "count registrations", Err: err}
	}
	return n, nil
}

// Delete removes the registration with id. A missing id succeeds, so
// repeating a delete is harmless.
func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	if err := s.authorize(ctx, token); err != nil {
		return err
	}

	if err := s.store.DeleteRegistrationByID(ctx, id); err != nil {
		return &types.StorageError{Op: "delete registration", Err: err}
	}

	s.metrics.IncrementRegistrationsDeleted()
	s.logger.InfoContext(ctx, "registration deleted", slog.Int64("id", id))
	return nil
}

func (s *Service) authorize(ctx context.Context, token string) error {
	if _, err := s.auth.Authorize(token); err != nil {
		s.logger.WarnContext(ctx, "admin call rejected", slog.String("reason", err.Error()))
		return err
	}
	return nil
}
