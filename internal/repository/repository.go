package repository

import (
	"context"
	"database/sql"
	"time"

	"event_rsvp/internal/models"
	"event_rsvp/internal/repository/db"
)

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

// RsvpRepo is the persistence contract for attendee confirmations.
// Get* methods return (nil, nil) when no matching record exists.
type RsvpRepo interface {
	List(ctx context.Context) ([]models.Rsvp, error)
	GetByID(ctx context.Context, id int64) (*models.Rsvp, error)
	GetByDeviceKey(ctx context.Context, deviceKey string) (*models.Rsvp, error)
	Create(ctx context.Context, name, deviceKey string, ts time.Time) (int64, error)
	Update(ctx context.Context, id int64, name string, ts time.Time) error
	Delete(ctx context.Context, id int64) error
}

// AdminRepo stores staff credentials. GetByUsername returns (nil, nil) if absent.
type AdminRepo interface {
	Create(ctx context.Context, username, passwordHash string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

type Repository struct {
	Rsvps  RsvpRepo
	Admins AdminRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Rsvps:  NewRsvpSQLite(db),
		Admins: NewAdminSQLite(db),
	}
}
