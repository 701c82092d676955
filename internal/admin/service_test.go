package admin

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/bootcamp-landing/registrations-api/internal/auth"
	"github.com/bootcamp-landing/registrations-api/internal/config"
	"github.com/bootcamp-landing/registrations-api/internal/metrics"
	"github.com/bootcamp-landing/registrations-api/internal/registration"
	"github.com/bootcamp-landing/registrations-api/internal/storage"
	"github.com/bootcamp-landing/registrations-api/internal/storage/memory"
	"github.com/bootcamp-landing/registrations-api/internal/types"
)

var noopLogger = slog.New(slog.DiscardHandler)

// spyStore counts every call so tests can prove rejected tokens never
// reach storage.
type spyStore struct {
	storage.Storage
	calls int
	err   error
}

func (s *spyStore) GetRegistrations(ctx context.Context) ([]types.Registration, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.Storage.GetRegistrations(ctx)
}

func (s *spyStore) CountRegistrations(ctx context.Context) (int64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.Storage.CountRegistrations(ctx)
}

func (s *spyStore) DeleteRegistrationByID(ctx context.Context, id int64) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return s.Storage.DeleteRegistrationByID(ctx, id)
}

type AdminServiceSuite struct {
	suite.Suite
	ctx    context.Context
	store  *spyStore
	gate   *auth.Gate
	intake *registration.Service
	svc    *Service
	token  string
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceSuite))
}

func (s *AdminServiceSuite) SetupTest() {
	s.ctx = context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("2991985Fs!"), bcrypt.MinCost)
	s.Require().NoError(err)

	m := metrics.NewNop()
	s.store = &spyStore{Storage: memory.New()}
	s.gate = auth.NewGate(config.Admin{
		Username:     "qudah",
		PasswordHash: string(hash),
		TokenSecret:  "suite-secret",
		TokenTTL:     time.Hour,
		TokenIssuer:  "registrations-api",
	}, noopLogger, m)
	s.intake = registration.NewService(s.store, noopLogger, m)
	s.svc = NewService(s.gate, s.store, noopLogger, m)

	res := s.gate.Login(s.ctx, "qudah", "2991985Fs!")
	s.Require().True(res.Success)
	s.token = res.Token
}

func (s *AdminServiceSuite) submit(name string) int64 {
	res, err := s.intake.Submit(s.ctx, types.RegistrationInput{
		Name:  name,
		Email: name + "@example.com",
		Phone: "0790000000",
	})
	s.Require().NoError(err)
	return res.ID
}

func (s *AdminServiceSuite) TestListReturnsSubmittedData() {
	s.submit("alice")
	s.submit("bob")
	s.submit("carol")

	rows, err := s.svc.List(s.ctx, s.token)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	names := []string{rows[0].Name, rows[1].Name, rows[2].Name}
	s.Equal([]string{"alice", "bob", "carol"}, names)
	s.Equal("bob@example.com", rows[1].Email)
	s.Less(rows[0].ID, rows[1].ID)
	s.Less(rows[1].ID, rows[2].ID)
}

func (s *AdminServiceSuite) TestRejectedTokenNeverTouchesStore() {
	s.submit("alice")
	before := s.store.calls

	for _, token := range []string{"", "anything-else", "admin-session-token"} {
		_, err := s.svc.List(s.ctx, token)
		var aerr *types.AuthorizationError
		s.ErrorAs(err, &aerr)

		_, err = s.svc.Count(s.ctx, token)
		s.ErrorAs(err, &aerr)

		err = s.svc.Delete(s.ctx, token, 1)
		s.ErrorAs(err, &aerr)
	}

	s.Equal(before, s.store.calls)
}

func (s *AdminServiceSuite) TestDeleteThenList() {
	keep := s.submit("alice")
	drop := s.submit("bob")

	before, err := s.svc.Count(s.ctx, s.token)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, s.token, drop))

	after, err := s.svc.Count(s.ctx, s.token)
	s.Require().NoError(err)
	s.Equal(before-1, after)

	rows, err := s.svc.List(s.ctx, s.token)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(keep, rows[0].ID)
}

func (s *AdminServiceSuite) TestDeleteIsIdempotent() {
	id := s.submit("alice")
	s.submit("bob")

	s.Require().NoError(s.svc.Delete(s.ctx, s.token, id))
	s.Require().NoError(s.svc.Delete(s.ctx, s.token, id))

	n, err := s.svc.Count(s.ctx, s.token)
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *AdminServiceSuite) TestStorageErrors() {
	s.store.err = errors.New("connection refused")

	_, err := s.svc.List(s.ctx, s.token)
	var serr *types.StorageError
	s.ErrorAs(err, &serr)

	_, err = s.svc.Count(s.ctx, s.token)
	s.ErrorAs(err, &serr)

	err = s.svc.Delete(s.ctx, s.token, 1)
	s.ErrorAs(err, &serr)
}

func TestService_ExpiredToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	gate := auth.NewGate(config.Admin{
		Username:     "qudah",
		PasswordHash: string(hash),
		TokenSecret:  "secret",
		TokenTTL:     time.Nanosecond,
		TokenIssuer:  "registrations-api",
	}, noopLogger, metrics.NewNop())
	svc := NewService(gate, memory.New(), noopLogger, metrics.NewNop())

	res := gate.Login(context.Background(), "qudah", "pw")
	require.True(t, res.Success)
	time.Sleep(1100 * time.Millisecond)

	_, err = svc.Count(context.Background(), res.Token)
	var aerr *types.AuthorizationError
	assert.ErrorAs(t, err, &aerr)
}
