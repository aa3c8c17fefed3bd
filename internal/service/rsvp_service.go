package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"event_rsvp/internal/models"
	"event_rsvp/internal/repository"
)

// RsvpService implements the attendee confirmation rules: trimmed non-empty
// names, one confirmation per device key, and edits/deletes allowed only for
// the device that created the record. The device key is a soft ownership
// token compared by exact equality, not a credential.
type RsvpService struct {
	rsvps repository.RsvpRepo
}

func NewRsvpService(rsvps repository.RsvpRepo) *RsvpService {
	return &RsvpService{rsvps: rsvps}
}

// validateInput trims the name and rejects empty name or device key.
func validateInput(name, deviceKey string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if strings.TrimSpace(deviceKey) == "" {
		return "", ErrDeviceKeyRequired
	}
	return name, nil
}

// List returns all confirmations, newest first.
func (s *RsvpService) List(ctx context.Context) ([]models.Rsvp, error) {
	return s.rsvps.List(ctx)
}

// Create records a new confirmation for the device.
// A device that already confirmed gets ErrAlreadyRsvped; the pre-check covers
// the common case and the storage-level unique constraint covers the race
// where two submits for one device pass the check concurrently.
func (s *RsvpService) Create(ctx context.Context, name, deviceKey string) (models.Rsvp, error) {
	name, err := validateInput(name, deviceKey)
	if err != nil {
		return models.Rsvp{}, err
	}

	existing, err := s.rsvps.GetByDeviceKey(ctx, deviceKey)
	if err != nil {
		return models.Rsvp{}, err
	}
	if existing != nil {
		return models.Rsvp{}, ErrAlreadyRsvped
	}

	now := time.Now().UTC().Truncate(time.Second)
	id, err := s.rsvps.Create(ctx, name, deviceKey, now)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateDeviceKey) {
			return models.Rsvp{}, ErrAlreadyRsvped
		}
		return models.Rsvp{}, err
	}

	return models.Rsvp{ID: id, Name: name, DeviceKey: deviceKey, Timestamp: now}, nil
}

// Edit renames an existing confirmation and refreshes its timestamp.
// Only the owning device may edit.
func (s *RsvpService) Edit(ctx context.Context, id int64, name, deviceKey string) error {
	name, err := validateInput(name, deviceKey)
	if err != nil {
		return err
	}

	rec, err := s.rsvps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrRsvpNotFound
	}
	if rec.DeviceKey != deviceKey {
		return ErrNotOwner
	}

	now := time.Now().UTC().Truncate(time.Second)
	return s.rsvps.Update(ctx, id, name, now)
}

// Delete removes a confirmation permanently. Only the owning device may delete.
func (s *RsvpService) Delete(ctx context.Context, id int64, deviceKey string) error {
	if strings.TrimSpace(deviceKey) == "" {
		return ErrDeviceKeyRequired
	}

	rec, err := s.rsvps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrRsvpNotFound
	}
	if rec.DeviceKey != deviceKey {
		return ErrNotOwner
	}

	return s.rsvps.Delete(ctx, id)
}
