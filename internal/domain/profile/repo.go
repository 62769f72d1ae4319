package profile

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no profile has been saved yet.
var ErrNotFound = errors.New("profile not found")

// Repository persists the single editable profile document.
type Repository interface {
	// Load returns the stored profile, or ErrNotFound when none was saved.
	Load(ctx context.Context) (*Profile, error)
	// Save overwrites the stored profile in full.
	Save(ctx context.Context, p *Profile) error
}
