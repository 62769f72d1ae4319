package patient

import (
	"context"
	"errors"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// ErrNotFound is returned when no patient record matches the requested id.
var ErrNotFound = errors.New("patient not found")

// Repository reads and rewrites the Patient record store. The store is tiny
// (a personal tracker holds one record, rarely a handful), so every method
// works on full documents rather than projections.
type Repository interface {
	// List returns every patient record in store order.
	List(ctx context.Context) ([]fhir.Patient, error)
	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*fhir.Patient, error)
	// First returns the first record in the store, or ErrNotFound when the
	// store is empty. Used when a session is not pinned to a record id.
	First(ctx context.Context) (*fhir.Patient, error)
	// Update replaces the record with the same id and rewrites the store.
	// Returns ErrNotFound without touching the file when no record matches.
	Update(ctx context.Context, p *fhir.Patient) error
}
