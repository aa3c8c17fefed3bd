package service

import (
	"context"
	"time"

	"event_rsvp/internal/models"
	"event_rsvp/internal/repository"
)

// Rsvps exposes attendee confirmation CRUD with device-key ownership checks.
type Rsvps interface {
	List(ctx context.Context) ([]models.Rsvp, error)
	Create(ctx context.Context, name, deviceKey string) (models.Rsvp, error)
	Edit(ctx context.Context, id int64, name, deviceKey string) error
	Delete(ctx context.Context, id int64, deviceKey string) error
}

// AdminAuth exposes credential verification, session issuance and protected
// admin-account creation.
type AdminAuth interface {
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(token string) (*models.Session, error)
	CreateAdmin(ctx context.Context, username, password string) (int64, error)
	EnsureDefaultAdmin(ctx context.Context) (created bool, err error)
}

// Janitor runs the background loop that evicts expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Janitor interface {
	Run(ctx context.Context, tick time.Duration)
}

// Config carries the knobs the services read from the config file.
type Config struct {
	SessionSigningKey    string
	SessionTTL           time.Duration
	DefaultAdminPassword string
}

// Service aggregates all sub-services.
type Service struct {
	Rsvps    Rsvps
	Auth     AdminAuth
	Sessions Janitor
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	store := NewSessionStore(cfg.SessionTTL)
	return &Service{
		Rsvps:    NewRsvpService(repos.Rsvps),
		Auth:     NewAuthService(repos.Admins, store, cfg),
		Sessions: store,
	}
}
