package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

const registrationColumns = `id, full_name, email, phone_number, college_name, department,
	project_title, category, abstract, created_at_ns`

// PostgresStore keeps registrations and admin credentials in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the registrations and admins tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registrations (
			id            BIGSERIAL PRIMARY KEY,
			full_name     TEXT   NOT NULL,
			email         TEXT   NOT NULL,
			email_lower   TEXT   NOT NULL,
			phone_number  TEXT   NOT NULL,
			college_name  TEXT   NOT NULL,
			department    TEXT   NOT NULL,
			project_title TEXT   NOT NULL,
			category      TEXT   NOT NULL,
			abstract      TEXT   NOT NULL,
			created_at_ns BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS registrations_email_lower_idx ON registrations (email_lower);
		CREATE TABLE IF NOT EXISTS admins (
			email         TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL
		)
	`)
	return err
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// SeedAdmin inserts or replaces the admin credential pair.
func (s *PostgresStore) SeedAdmin(ctx context.Context, email, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO admins (email, password_hash) VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		normalizeEmail(email), hashed,
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// VerifyAdminCredentials reports whether the pair belongs to an admin.
// An unknown email and a wrong password both return false.
func (s *PostgresStore) VerifyAdminCredentials(ctx context.Context, email, password string) (bool, error) {
	var hashed string
	err := s.pool.QueryRow(ctx,
		`SELECT password_hash FROM admins WHERE email = $1`, normalizeEmail(email),
	).Scan(&hashed)
	if errors.Is(err, pgx.ErrNoRows) {
		return rejectUnknownAdmin(password), nil
	}
	if err != nil {
		return false, fmt.Errorf("verify admin: %w", err)
	}
	return passwordMatches(hashed, password), nil
}

func (s *PostgresStore) InsertRegistration(ctx context.Context, f models.RegistrationFields) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO registrations (full_name, email, email_lower, phone_number, college_name,
			department, project_title, category, abstract, created_at_ns)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		f.FullName, f.Email, normalizeEmail(f.Email), f.PhoneNumber, f.CollegeName, f.Department,
		f.ProjectTitle, f.Category, f.Abstract, nowNanos(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert registration: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) UpdateRegistration(ctx context.Context, id int64, f models.RegistrationFields) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE registrations SET full_name = $2, email = $3, email_lower = $4, phone_number = $5,
			college_name = $6, department = $7, project_title = $8, category = $9, abstract = $10
		 WHERE id = $1`,
		id, f.FullName, f.Email, normalizeEmail(f.Email), f.PhoneNumber, f.CollegeName, f.Department,
		f.ProjectTitle, f.Category, f.Abstract,
	)
	if err != nil {
		return false, fmt.Errorf("update registration %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) DeleteRegistration(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete registration %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListRegistrations returns every registration in id order.
func (s *PostgresStore) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+registrationColumns+` FROM registrations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

// GetRegistrationByEmail returns the most recent registration for email,
// or nil when there is none.
func (s *PostgresStore) GetRegistrationByEmail(ctx context.Context, email string) (*models.Registration, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE email_lower = $1 ORDER BY id DESC LIMIT 1`,
		normalizeEmail(email),
	)
	r, err := scanRegistration(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get registration by email: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) CountRegistrations(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func scanRegistration(scanner interface{ Scan(...any) error }) (models.Registration, error) {
	var r models.Registration
	err := scanner.Scan(
		&r.ID, &r.FullName, &r.Email, &r.PhoneNumber, &r.CollegeName, &r.Department,
		&r.ProjectTitle, &r.Category, &r.Abstract, &r.Timestamp,
	)
	return r, err
}
