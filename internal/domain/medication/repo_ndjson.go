package medication

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// RequestNDJSONRepo reads prescriptions from a flat NDJSON file.
type RequestNDJSONRepo struct {
	path string
}

func NewRequestNDJSONRepo(path string) *RequestNDJSONRepo {
	return &RequestNDJSONRepo{path: path}
}

func (r *RequestNDJSONRepo) List(ctx context.Context) ([]fhir.MedicationRequest, error) {
	var requests []fhir.MedicationRequest
	err := fhir.ReadLines(r.path, func(line []byte) error {
		if rt := fhir.ResourceTypeOf(line); rt != "" && rt != fhir.ResourceTypeMedicationRequest {
			return nil
		}
		var req fhir.MedicationRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return fmt.Errorf("decode medication request: %w", err)
		}
		requests = append(requests, req)
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return requests, nil
}

// AdministrationNDJSONRepo reads and appends dose-taken events in a flat
// NDJSON file, one event per line.
type AdministrationNDJSONRepo struct {
	path string
}

func NewAdministrationNDJSONRepo(path string) *AdministrationNDJSONRepo {
	return &AdministrationNDJSONRepo{path: path}
}

func (r *AdministrationNDJSONRepo) List(ctx context.Context) ([]fhir.MedicationAdministration, error) {
	var admins []fhir.MedicationAdministration
	err := fhir.ReadLines(r.path, func(line []byte) error {
		if rt := fhir.ResourceTypeOf(line); rt != "" && rt != fhir.ResourceTypeMedicationAdministration {
			return nil
		}
		var a fhir.MedicationAdministration
		if err := json.Unmarshal(line, &a); err != nil {
			return fmt.Errorf("decode medication administration: %w", err)
		}
		admins = append(admins, a)
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return admins, nil
}

func (r *AdministrationNDJSONRepo) Append(ctx context.Context, a *fhir.MedicationAdministration) error {
	if err := fhir.AppendLine(r.path, a); err != nil {
		return fmt.Errorf("append to %s: %w", r.path, err)
	}
	return nil
}
