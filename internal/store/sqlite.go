package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/models"
)

// SQLiteStore is the single-file registration store used for local runs
// and tests. It mirrors PostgresStore query for query.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// runs the schema. Use ":memory:" for a throwaway store.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writes.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS registrations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name     TEXT    NOT NULL,
			email         TEXT    NOT NULL,
			email_lower   TEXT    NOT NULL,
			phone_number  TEXT    NOT NULL,
			college_name  TEXT    NOT NULL,
			department    TEXT    NOT NULL,
			project_title TEXT    NOT NULL,
			category      TEXT    NOT NULL,
			abstract      TEXT    NOT NULL,
			created_at_ns INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS registrations_email_lower_idx ON registrations (email_lower);
		CREATE TABLE IF NOT EXISTS admins (
			email         TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SeedAdmin(ctx context.Context, email, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admins (email, password_hash) VALUES (?, ?)
		 ON CONFLICT (email) DO UPDATE SET password_hash = excluded.password_hash`,
		normalizeEmail(email), hashed,
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *SQLiteStore) VerifyAdminCredentials(ctx context.Context, email, password string) (bool, error) {
	var hashed string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM admins WHERE email = ?`, normalizeEmail(email),
	).Scan(&hashed)
	if errors.Is(err, sql.ErrNoRows) {
		return rejectUnknownAdmin(password), nil
	}
	if err != nil {
		return false, fmt.Errorf("verify admin: %w", err)
	}
	return passwordMatches(hashed, password), nil
}

func (s *SQLiteStore) InsertRegistration(ctx context.Context, f models.RegistrationFields) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO registrations (full_name, email, email_lower, phone_number, college_name,
			department, project_title, category, abstract, created_at_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.FullName, f.Email, normalizeEmail(f.Email), f.PhoneNumber, f.CollegeName, f.Department,
		f.ProjectTitle, f.Category, f.Abstract, nowNanos(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert registration: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("registration id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) UpdateRegistration(ctx context.Context, id int64, f models.RegistrationFields) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE registrations SET full_name = ?, email = ?, email_lower = ?, phone_number = ?,
			college_name = ?, department = ?, project_title = ?, category = ?, abstract = ?
		 WHERE id = ?`,
		f.FullName, f.Email, normalizeEmail(f.Email), f.PhoneNumber, f.CollegeName, f.Department,
		f.ProjectTitle, f.Category, f.Abstract, id,
	)
	if err != nil {
		return false, fmt.Errorf("update registration %d: %w", id, err)
	}
	return rowsChanged(result)
}

func (s *SQLiteStore) DeleteRegistration(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete registration %d: %w", id, err)
	}
	return rowsChanged(result)
}

func (s *SQLiteStore) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+registrationColumns+` FROM registrations ORDER BY id`)
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

func (s *SQLiteStore) GetRegistrationByEmail(ctx context.Context, email string) (*models.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE email_lower = ? ORDER BY id DESC LIMIT 1`,
		normalizeEmail(email),
	)
	r, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get registration by email: %w", err)
	}
	return &r, nil
}

func (s *SQLiteStore) CountRegistrations(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func rowsChanged(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
