// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootcamp-landing/registrations-api/internal/storage"
	"github.com/bootcamp-landing/registrations-api/internal/types"
)

func ptr[T any](v T) *T { return &v }

// Input returns a valid registration input whose name carries suffix.
func Input(suffix string) types.RegistrationInput {
	return types.RegistrationInput{
		Name:  "Student " + suffix,
		Email: "student" + suffix + "@example.com",
		Phone: "0790000000",
	}
}

// Run executes the shared suite. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Helper()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first, err := s.CreateRegistration(ctx, Input("a"))
		require.NoError(t, err)
		second, err := s.CreateRegistration(ctx, Input("b"))
		require.NoError(t, err)

		assert.Greater(t, second, first)
	})

	t.Run("list round-trips all fields in id order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		full := types.RegistrationInput{
			Name:       "سارة",
			Email:      "sara@example.com",
			Phone:      "+962790000000",
			Experience: ptr(types.ExperienceIntermediate),
			Country:    ptr("jordan"),
			City:       ptr("amman"),
			Source:     ptr("instagram"),
			Message:    ptr("see you soon"),
		}
		before := time.Now().Add(-time.Second)

		id1, err := s.CreateRegistration(ctx, full)
		require.NoError(t, err)
		id2, err := s.CreateRegistration(ctx, Input("b"))
		require.NoError(t, err)

		got, err := s.GetRegistrations(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		want := []types.Registration{
			{
				ID:         id1,
				Name:       full.Name,
				Email:      full.Email,
				Phone:      full.Phone,
				Experience: full.Experience,
				Country:    full.Country,
				City:       full.City,
				Source:     full.Source,
				Message:    full.Message,
			},
			{
				ID:    id2,
				Name:  "Student b",
				Email: "studentb@example.com",
				Phone: "0790000000",
			},
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(types.Registration{}, "CreatedAt")); diff != "" {
			t.Errorf("GetRegistrations mismatch (-want +got):\n%s", diff)
		}
		for _, r := range got {
			assert.True(t, r.CreatedAt.After(before), "created_at %v should be stamped at insert", r.CreatedAt)
		}
	})

	t.Run("empty store lists empty slice", func(t *testing.T) {
		s := newStore(t)

		got, err := s.GetRegistrations(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)

		count, err := s.CountRegistrations(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("delete removes row and is a no-op when missing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.CreateRegistration(ctx, Input("a"))
		require.NoError(t, err)
		_, err = s.CreateRegistration(ctx, Input("b"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteRegistrationByID(ctx, id))
		require.NoError(t, s.DeleteRegistrationByID(ctx, id))
		require.NoError(t, s.DeleteRegistrationByID(ctx, 999999))

		count, err := s.CountRegistrations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		got, err := s.GetRegistrations(ctx)
		require.NoError(t, err)
		for _, r := range got {
			assert.NotEqual(t, id, r.ID)
		}
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.CreateRegistration(ctx, Input("a"))
		require.NoError(t, err)
		require.NoError(t, s.DeleteRegistrationByID(ctx, id))

		next, err := s.CreateRegistration(ctx, Input("b"))
		require.NoError(t, err)
		assert.Greater(t, next, id)
	})

	t.Run("concurrent inserts are independent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const n = 20

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.CreateRegistration(ctx, Input("same")); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		count, err := s.CountRegistrations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(n), count)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(context.Background()))
	})
}
