package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"event_rsvp/internal/models"
)

// ErrDuplicateUsername reports a violation of the UNIQUE(username) constraint.
var ErrDuplicateUsername = errors.New("username already exists")

type AdminSQLite struct {
	db *sql.DB
}

func NewAdminSQLite(db *sql.DB) *AdminSQLite { return &AdminSQLite{db: db} }

// Ensure implementation of AdminRepo interface at compile time.
var _ AdminRepo = (*AdminSQLite)(nil)

const (
	insertAdminSQL           = `INSERT INTO admins (username, password_hash) VALUES (?, ?)`
	selectAdminByUsernameSQL = `SELECT id, username, password_hash FROM admins WHERE username = ?`
)

// Create inserts a new admin and returns its ID.
func (r *AdminSQLite) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertAdminSQL, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert admin %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for admin %q: %w", username, err)
	}
	return lastID, nil
}

// GetByUsername fetches an admin by username. Returns (nil, nil) if not found.
func (r *AdminSQLite) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := r.db.QueryRowContext(ctx, selectAdminByUsernameSQL, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select admin %q: %w", username, err)
	}
	return &a, nil
}
