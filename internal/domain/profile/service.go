package profile

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/domain/patient"
	"github.com/medtrack/medtrack/internal/platform/fhir"
)

type Service struct {
	profiles Repository
	patients patient.Repository
	logger   zerolog.Logger
}

func NewService(profiles Repository, patients patient.Repository, logger zerolog.Logger) *Service {
	return &Service{
		profiles: profiles,
		patients: patients,
		logger:   logger.With().Str("component", "profile").Logger(),
	}
}

// Load returns the stored profile when one exists, otherwise derives one
// from the clinical record. A session pinned to a patient id resolves that
// record; an unpinned session falls back to the first record in the store.
func (s *Service) Load(ctx context.Context, patientID string) (*Profile, error) {
	prof, err := s.profiles.Load(ctx)
	if err == nil {
		return prof, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p, err := s.resolvePatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return FromPatientDetailed(p), nil
}

// Save persists the edited profile and merges it into the clinical record.
// The record is resolved first: if it cannot be located, the save aborts
// before anything touches disk. The profile file is written, then the
// record store is rewritten atomically with the merged document.
func (s *Service) Save(ctx context.Context, patientID string, prof *Profile) error {
	p, err := s.resolvePatient(ctx, patientID)
	if err != nil {
		return err
	}

	if err := s.profiles.Save(ctx, prof); err != nil {
		return err
	}

	MergeInto(prof, p)
	if err := s.patients.Update(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Str("patient_id", p.ID).Msg("profile saved and merged")
	return nil
}

func (s *Service) resolvePatient(ctx context.Context, patientID string) (*fhir.Patient, error) {
	if patientID != "" {
		return s.patients.GetByID(ctx, patientID)
	}
	return s.patients.First(ctx)
}
