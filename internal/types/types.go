// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, services, and storage backends can all import types without
// depending on each other.
package types

import "time"

// Experience is the self-reported programming level picked on the public form.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Registration is a single lead submitted through the public form, as it
// is stored and returned to the admin panel.
//
// Optional columns are pointers: nil means "not provided" and encodes to
// JSON null, never to an empty string.
type Registration struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Experience *Experience `json:"experience"`
	Country    *string     `json:"country"`
	City       *string     `json:"city"`
	Source     *string     `json:"source"`
	Message    *string     `json:"message"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// RegistrationInput is the payload of the public registration form.
//
// The validate:"..." tags are the whole intake contract and are checked by
// the go-playground/validator package before anything reaches storage:
//
//	name       — at least 2 characters
//	email      — a syntactically valid address
//	phone      — at least 8 characters, no format checks beyond that
//	experience — optional, one of the three Experience values
type RegistrationInput struct {
	Name       string      `json:"name"       validate:"required,min=2"`
	Email      string      `json:"email"      validate:"required,email"`
	Phone      string      `json:"phone"      validate:"required,min=8"`
	Experience *Experience `json:"experience" validate:"omitempty,oneof=beginner intermediate advanced"`
	Country    *string     `json:"country"`
	City       *string     `json:"city"`
	Source     *string     `json:"source"`
	Message    *string     `json:"message"`
}

// Normalize turns optional fields submitted as "" into absent (nil) values
// so they are stored as NULL rather than as empty strings.
func (in RegistrationInput) Normalize() RegistrationInput {
	in.Country = nilIfEmpty(in.Country)
	in.City = nilIfEmpty(in.City)
	in.Source = nilIfEmpty(in.Source)
	in.Message = nilIfEmpty(in.Message)
	if in.Experience != nil && *in.Experience == "" {
		in.Experience = nil
	}
	return in
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
