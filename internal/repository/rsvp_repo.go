package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"event_rsvp/internal/models"
)

// ErrDuplicateDeviceKey reports a violation of the UNIQUE(device_key) constraint,
// i.e. the device already has a confirmation on file.
var ErrDuplicateDeviceKey = errors.New("device key already has an RSVP")

type RsvpSQLite struct {
	db *sql.DB
}

func NewRsvpSQLite(db *sql.DB) *RsvpSQLite { return &RsvpSQLite{db: db} }

// Ensure implementation of RsvpRepo interface at compile time.
var _ RsvpRepo = (*RsvpSQLite)(nil)

const (
	// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"; sorts correctly as text.
	sqliteTimeLayout = "2006-01-02 15:04:05"

	insertRsvpSQL            = `INSERT INTO rsvps (name, device_key, timestamp) VALUES (?, ?, ?)`
	selectRsvpByIDSQL        = `SELECT id, name, device_key, timestamp FROM rsvps WHERE id = ?`
	selectRsvpByDeviceKeySQL = `SELECT id, name, device_key, timestamp FROM rsvps WHERE device_key = ?`
	listRsvpsSQL             = `SELECT id, name, device_key, timestamp FROM rsvps ORDER BY timestamp DESC, id DESC`
	updateRsvpSQL            = `UPDATE rsvps SET name = ?, timestamp = ? WHERE id = ?`
	deleteRsvpSQL            = `DELETE FROM rsvps WHERE id = ?`
)

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// List returns all confirmations, newest first (id breaks same-second ties).
func (r *RsvpSQLite) List(ctx context.Context) ([]models.Rsvp, error) {
	rows, err := r.db.QueryContext(ctx, listRsvpsSQL)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	defer rows.Close()

	out := make([]models.Rsvp, 0, 32)
	for rows.Next() {
		var rec models.Rsvp
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.DeviceKey, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan rsvp row: %w", err)
		}
		rec.Timestamp = rec.Timestamp.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rsvp rows: %w", err)
	}
	return out, nil
}

// GetByID fetches one confirmation. Returns (nil, nil) if not found.
func (r *RsvpSQLite) GetByID(ctx context.Context, id int64) (*models.Rsvp, error) {
	return r.getOne(ctx, selectRsvpByIDSQL, id)
}

// GetByDeviceKey fetches the confirmation owned by a device. Returns (nil, nil) if not found.
func (r *RsvpSQLite) GetByDeviceKey(ctx context.Context, deviceKey string) (*models.Rsvp, error) {
	return r.getOne(ctx, selectRsvpByDeviceKeySQL, deviceKey)
}

func (r *RsvpSQLite) getOne(ctx context.Context, query string, arg any) (*models.Rsvp, error) {
	var rec models.Rsvp
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&rec.ID, &rec.Name, &rec.DeviceKey, &rec.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select rsvp: %w", err)
	}
	rec.Timestamp = rec.Timestamp.UTC()
	return &rec, nil
}

// Create inserts a new confirmation and returns its ID.
// A racing duplicate for the same device surfaces as ErrDuplicateDeviceKey.
func (r *RsvpSQLite) Create(ctx context.Context, name, deviceKey string, ts time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertRsvpSQL, name, deviceKey, ts.UTC().Format(sqliteTimeLayout))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateDeviceKey
		}
		return 0, fmt.Errorf("insert rsvp for device %q: %w", deviceKey, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for device %q: %w", deviceKey, err)
	}
	return lastID, nil
}

// Update replaces name and timestamp of an existing confirmation.
func (r *RsvpSQLite) Update(ctx context.Context, id int64, name string, ts time.Time) error {
	if _, err := r.db.ExecContext(ctx, updateRsvpSQL, name, ts.UTC().Format(sqliteTimeLayout), id); err != nil {
		return fmt.Errorf("update rsvp %d: %w", id, err)
	}
	return nil
}

// Delete removes a confirmation permanently.
func (r *RsvpSQLite) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteRsvpSQL, id); err != nil {
		return fmt.Errorf("delete rsvp %d: %w", id, err)
	}
	return nil
}
