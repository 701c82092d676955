// Package memory is an in-process storage.Storage used by tests and by
// throwaway demo deployments (storage.driver: memory). Nothing survives a
// restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bootcamp-landing/registrations-api/internal/types"
)

type Store struct {
	mu     sync.RWMutex
	rows   []types.Registration
	lastID int64
	now    func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) CreateRegistration(_ context.Context, in types.RegistrationInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	s.rows = append(s.rows, types.Registration{
		ID:         s.lastID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Experience: clone(in.Experience),
		Country:    clone(in.Country),
		City:       clone(in.City),
		Source:     clone(in.Source),
		Message:    clone(in.Message),
		CreatedAt:  s.now().UTC(),
	})
	return s.lastID, nil
}

// GetRegistrations returns a copy; rows are kept in insertion (= id) order.
func (s *Store) GetRegistrations(_ context.Context) ([]types.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Registration, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *Store) CountRegistrations(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

func (s *Store) DeleteRegistrationByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rows {
		if r.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
