package medication

import (
	"context"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// RequestRepository reads prescription orders. Requests are read-only in
// this system; nothing ever writes them.
type RequestRepository interface {
	// List returns every prescription in store order. A missing store reads
	// as empty, not as an error.
	List(ctx context.Context) ([]fhir.MedicationRequest, error)
}

// AdministrationRepository reads and appends dose-taken events. The store is
// append-only: events are never updated or deleted.
type AdministrationRepository interface {
	// List returns every administration in append order. A missing store
	// reads as empty, not as an error.
	List(ctx context.Context) ([]fhir.MedicationAdministration, error)
	// Append writes one new event to the end of the store.
	Append(ctx context.Context, a *fhir.MedicationAdministration) error
}
