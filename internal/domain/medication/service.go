package medication

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// ErrNotFound is returned when a medication key matches no known
// prescription.
var ErrNotFound = errors.New("medication not found")

// List is the dashboard payload: prescriptions partitioned by status, with
// per-day taken state resolved on the active ones.
type List struct {
	Active   []Summary `json:"active"`
	Inactive []Summary `json:"inactive"`
}

type Service struct {
	requests RequestRepository
	admins   AdministrationRepository
	trackers *TrackerSet
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(requests RequestRepository, admins AdministrationRepository, logger zerolog.Logger) *Service {
	return &Service{
		requests: requests,
		admins:   admins,
		trackers: NewTrackerSet(),
		logger:   logger.With().Str("component", "medication").Logger(),
		now:      time.Now,
	}
}

// List loads all prescriptions, seeds the account's session tracker for
// today from the persisted administrations, and returns the partitioned
// summaries with taken state filled in on the active list.
func (s *Service) List(ctx context.Context, account, today string) (*List, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	active, inactive := Extract(requests)

	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(active))
	for i := range active {
		keys[i] = active[i].Key
	}
	tracker := s.trackers.Get(account)
	tracker.Seed(today, keys, admins)
	for i := range active {
		active[i].TakenToday = tracker.Taken(today, active[i].Key)
	}

	return &List{Active: active, Inactive: inactive}, nil
}

// MarkTaken records one dose of the given medication for today: it appends a
// completed administration event to the store and flips the session flag.
// The event carries the prescription's medication concept so the key derives
// back to the same value on the next load.
func (s *Service) MarkTaken(ctx context.Context, account, patientID, key, today string) (*fhir.MedicationAdministration, error) {
	summary, err := s.findByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	admin := s.buildAdministration(summary, patientID, today)
	if err := s.admins.Append(ctx, admin); err != nil {
		return nil, err
	}
	s.trackers.Get(account).Mark(today, key)

	s.logger.Info().
		Str("key", key).
		Str("date", today).
		Str("administration_id", admin.ID).
		Msg("dose recorded")
	return admin, nil
}

// Unmark clears the session flag for the key. The administration appended
// when the dose was marked stays in the store; unmarking never retracts a
// persisted event.
func (s *Service) Unmark(ctx context.Context, account, key, today string) error {
	if _, err := s.findByKey(ctx, key); err != nil {
		return err
	}
	s.trackers.Get(account).Unmark(today, key)
	return nil
}

// Administrations returns every persisted dose event in append order.
func (s *Service) Administrations(ctx context.Context) ([]fhir.MedicationAdministration, error) {
	return s.admins.List(ctx)
}

// EndSession discards the account's in-process taken state.
func (s *Service) EndSession(account string) {
	s.trackers.Drop(account)
}

func (s *Service) findByKey(ctx context.Context, key string) (*Summary, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	active, inactive := Extract(requests)
	for i := range active {
		if active[i].Key == key {
			return &active[i], nil
		}
	}
	for i := range inactive {
		if inactive[i].Key == key {
			return &inactive[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) buildAdministration(summary *Summary, patientID, today string) *fhir.MedicationAdministration {
	subject := summary.Source.Subject
	if subject.IsZero() && patientID != "" {
		subject = fhir.Reference{Reference: "Patient/" + patientID}
	}
	var subjectRef *fhir.Reference
	if !subject.IsZero() {
		subjectRef = &subject
	}
	encounter := summary.Source.Encounter
	if encounter.IsZero() {
		encounter = fhir.Reference{Reference: "Encounter/" + uuid.NewString()}
	}

	return &fhir.MedicationAdministration{
		ResourceType:              fhir.ResourceTypeMedicationAdministration,
		ID:                        uuid.NewString(),
		Status:                    "completed",
		MedicationCodeableConcept: summary.Source.MedicationCodeableConcept,
		Subject:                   subjectRef,
		Context:                   &encounter,
		EffectiveDateTime:         today + "T" + s.now().Format("15:04:05"),
		ReasonCode: []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{
				System:  fhir.SystemReasonMedicationGiven,
				Code:    "b",
				Display: "Given as Ordered",
			}},
			Text: "Self-administered medication",
		}},
		Performer: []fhir.Performer{{Actor: fhir.Reference{Display: "Patient"}}},
	}
}
