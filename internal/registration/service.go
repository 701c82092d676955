// Package registration is the public intake path: it validates a form
// submission and appends it to the store.
package registration

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bootcamp-landing/registrations-api/internal/metrics"
	"github.com/bootcamp-landing/registrations-api/internal/storage"
	"github.com/bootcamp-landing/registrations-api/internal/types"
)

// Result is returned for an accepted submission.
type Result struct {
	Success bool
	ID      int64
}

type Service struct {
	store    storage.Storage
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewService(store storage.Storage, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:    store,
		validate: newValidator(),
		logger:   logger,
		metrics:  m,
	}
}

// newValidator reports field names by their json tag so errors line up
// with what the form sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Submit validates in and stores it as a new registration. Identical
// submissions are stored as independent rows.
//
// Returns *types.ValidationError when any constraint fails (nothing is
// written) and *types.StorageError when the store rejects the insert.
func (s *Service) Submit(ctx context.Context, in types.RegistrationInput) (Result, error) {
	in = in.Normalize()

	if err := s.check(in); err != nil {
		s.metrics.IncrementValidationFailures()
		return Result{}, err
	}

	id, err := s.store.CreateRegistration(ctx, in)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store registration", slog.String("error", err.Error()))
		return Result{}, &types.StorageError{Op: "create registration", Err: err}
	}

	s.metrics.IncrementRegistrationsCreated()
	s.logger.InfoContext(ctx, "registration created", slog.Int64("id", id))

	return Result{Success: true, ID: id}, nil
}

func (s *Service) check(in types.RegistrationInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &types.ValidationError{Fields: make([]types.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, types.FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return verr
}
