// Package postgres is the lib/pq-backed storage.Storage, selected with
// storage.driver: postgres. The schema mirrors the SQLite one; BIGSERIAL
// never hands out a sequence value twice, so deleted ids are not reused.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bootcamp-landing/registrations-api/internal/types"

	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS registrations (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT        NOT NULL,
		email      TEXT        NOT NULL,
		phone      TEXT        NOT NULL,
		experience TEXT,
		country    TEXT,
		city       TEXT,
		source     TEXT,
		message    TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)
`

type Postgres struct {
	db *sql.DB
}

// New opens a pool for dsn, checks connectivity, and ensures the table.
func New(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) CreateRegistration(ctx context.Context, in types.RegistrationInput) (int64, error) {
	var experience *string
	if in.Experience != nil {
		e := string(*in.Experience)
		experience = &e
	}

	var id int64
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO registrations
			(name, email, phone, experience, country, city, source, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		in.Name, in.Email, in.Phone, experience,
		in.Country, in.City, in.Source, in.Message,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: insert: %w", err)
	}
	return id, nil
}

func (p *Postgres) GetRegistrations(ctx context.Context) ([]types.Registration, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, email, phone, experience, country, city, source, message, created_at
		FROM registrations
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: query: %w", err)
	}
	defer rows.Close()

	registrations := make([]types.Registration, 0)
	for rows.Next() {
		var (
			r                                   types.Registration
			experience, country, city, src, msg sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Phone,
			&experience, &country, &city, &src, &msg, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("GetRegistrations: scan row: %w", err)
		}
		if experience.Valid {
			e := types.Experience(experience.String)
			r.Experience = &e
		}
		r.Country = nullString(country)
		r.City = nullString(city)
		r.Source = nullString(src)
		r.Message = nullString(msg)
		r.CreatedAt = r.CreatedAt.UTC()
		registrations = append(registrations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRegistrations: rows iteration: %w", err)
	}
	return registrations, nil
}

func (p *Postgres) CountRegistrations(ctx context.Context) (int64, error) {
	var count int64
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM registrations").Scan(&count); err != nil {
		return 0, fmt.Errorf("CountRegistrations: scan: %w", err)
	}
	return count, nil
}

func (p *Postgres) DeleteRegistrationByID(ctx context.Context, id int64) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM registrations WHERE id = $1", id); err != nil {
		return fmt.Errorf("DeleteRegistrationByID: exec: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// Truncate empties the table and resets the id sequence. Tests only.
func (p *Postgres) Truncate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, "TRUNCATE registrations RESTART IDENTITY")
	return err
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
