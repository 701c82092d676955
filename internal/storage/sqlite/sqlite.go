// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite keeps the whole registrations table in a single file on disk,
// which is all a landing page with one lead table needs.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bootcamp-landing/registrations-api/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// schema uses AUTOINCREMENT rather than a bare INTEGER PRIMARY KEY so that
// an ID freed by a delete is never handed out again.
const schema = `
	CREATE TABLE IF NOT EXISTS registrations (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT    NOT NULL,
		email      TEXT    NOT NULL,
		phone      TEXT    NOT NULL,
		experience TEXT,
		country    TEXT,
		city       TEXT,
		source     TEXT,
		message    TEXT,
		created_at INTEGER NOT NULL
	)
`

// New opens the SQLite database at path, creates the registrations table
// if it does not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows one writer at a time; a single connection queues
	// concurrent requests in database/sql instead of failing with
	// "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// CreateRegistration inserts a new row into the registrations table.
// created_at is stamped here, in UTC milliseconds, not taken from the caller.
func (s *SQLite) CreateRegistration(ctx context.Context, in types.RegistrationInput) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO registrations
			(name, email, phone, experience, country, city, source, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: prepare: %w", err)
	}
	defer stmt.Close()

	var experience *string
	if in.Experience != nil {
		e := string(*in.Experience)
		experience = &e
	}

	result, err := stmt.ExecContext(ctx,
		in.Name,
		in.Email,
		in.Phone,
		experience,
		in.Country,
		in.City,
		in.Source,
		in.Message,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: last insert id: %w", err)
	}

	return lastID, nil
}

// GetRegistrations returns all rows ordered by id, oldest first.
func (s *SQLite) GetRegistrations(ctx context.Context) ([]types.Registration, error) {
	rows, err := s.Db.QueryContext(ctx, `
		SELECT id, name, email, phone, experience, country, city, source, message, created_at
		FROM registrations
		ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: query: %w", err)
	}
	defer rows.Close()

	registrations := make([]types.Registration, 0)

	for rows.Next() {
		var (
			r          types.Registration
			experience sql.NullString
			country    sql.NullString
			city       sql.NullString
			source     sql.NullString
			message    sql.NullString
			createdAt  int64
		)

		if err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Email,
			&r.Phone,
			&experience,
			&country,
			&city,
			&source,
			&message,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("GetRegistrations: scan row: %w", err)
		}

		if experience.Valid {
			e := types.Experience(experience.String)
			r.Experience = &e
		}
		r.Country = nullString(country)
		r.City = nullString(city)
		r.Source = nullString(source)
		r.Message = nullString(message)
		r.CreatedAt = time.UnixMilli(createdAt).UTC()

		registrations = append(registrations, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRegistrations: rows iteration: %w", err)
	}

	return registrations, nil
}

// CountRegistrations returns SELECT COUNT(*) over the table.
func (s *SQLite) CountRegistrations(ctx context.Context) (int64, error) {
	var count int64
	if err := s.Db.QueryRowContext(ctx, "SELECT COUNT(*) FROM registrations").Scan(&count); err != nil {
		return 0, fmt.Errorf("CountRegistrations: scan: %w", err)
	}
	return count, nil
}

// DeleteRegistrationByID removes a registration row by primary key.
// Zero affected rows is not an error.
func (s *SQLite) DeleteRegistrationByID(ctx context.Context, id int64) error {
	if _, err := s.Db.ExecContext(ctx, "DELETE FROM registrations WHERE id = ?", id); err != nil {
		return fmt.Errorf("DeleteRegistrationByID: exec: %w", err)
	}
	return nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
