package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// NDJSONRepo stores patient records in a flat NDJSON file, one record per
// line. Unlike the medication stores, a missing patient file is an error:
// nothing in this service can run without a clinical record to serve.
type NDJSONRepo struct {
	path string
}

func NewNDJSONRepo(path string) *NDJSONRepo {
	return &NDJSONRepo{path: path}
}

func (r *NDJSONRepo) List(ctx context.Context) ([]fhir.Patient, error) {
	var patients []fhir.Patient
	err := fhir.ReadLines(r.path, func(line []byte) error {
		if rt := fhir.ResourceTypeOf(line); rt != "" && rt != fhir.ResourceTypePatient {
			return nil
		}
		var p fhir.Patient
		if err := json.Unmarshal(line, &p); err != nil {
			return fmt.Errorf("decode patient record: %w", err)
		}
		patients = append(patients, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	return patients, nil
}

func (r *NDJSONRepo) GetByID(ctx context.Context, id string) (*fhir.Patient, error) {
	patients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *NDJSONRepo) First(ctx context.Context) (*fhir.Patient, error) {
	patients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, ErrNotFound
	}
	return &patients[0], nil
}

func (r *NDJSONRepo) Update(ctx context.Context, p *fhir.Patient) error {
	patients, err := r.List(ctx)
	if err != nil {
		return err
	}

	found := false
	docs := make([]interface{}, 0, len(patients))
	for i := range patients {
		if patients[i].ID == p.ID {
			docs = append(docs, p)
			found = true
			continue
		}
		docs = append(docs, patients[i])
	}
	if !found {
		return ErrNotFound
	}
	return fhir.WriteLinesAtomic(r.path, docs)
}
