package medication

import (
	"strings"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// Placeholder values used when a prescription document is missing a field.
const (
	UnknownKey        = "Unknown"
	UnknownDosage     = "Dosage not specified"
	UnknownPrescriber = "Unknown Prescriber"
	UnknownDate       = "Unknown Date"
)

// Summary is the dashboard projection of one prescription. Key correlates
// the prescription with administration events and per-day taken state, so it
// must derive identically on every reload.
type Summary struct {
	Key        string `json:"key"`
	Text       string `json:"text"`
	Dosage     string `json:"dosage"`
	Prescriber string `json:"prescriber"`
	Date       string `json:"date"`
	TakenToday bool   `json:"taken_today"`

	// Source is the prescription the summary was derived from; it supplies
	// the medication concept and references when recording a dose.
	Source fhir.MedicationRequest `json:"-"`
}

// KeyFor derives the medication key from a concept: the RxNorm code when
// present, else the free-text display, else the Unknown placeholder. Two
// code-less medications with identical text collide under one key; callers
// tolerate that.
func KeyFor(c fhir.CodeableConcept) string {
	if coding := c.CodingForSystem(fhir.SystemRxNorm); coding != nil && coding.Code != "" {
		return coding.Code
	}
	if c.Text != "" {
		return c.Text
	}
	return UnknownKey
}

// Extract partitions prescriptions into active and inactive summaries,
// preserving input order within each partition. Documents of other resource
// types are skipped. Missing fields degrade to placeholders, never errors.
func Extract(requests []fhir.MedicationRequest) (active, inactive []Summary) {
	for _, req := range requests {
		if req.ResourceType != "" && req.ResourceType != fhir.ResourceTypeMedicationRequest {
			continue
		}
		s := summarize(req)
		if req.Status == "active" {
			active = append(active, s)
		} else {
			inactive = append(inactive, s)
		}
	}
	return active, inactive
}

func summarize(req fhir.MedicationRequest) Summary {
	s := Summary{
		Key:        KeyFor(req.MedicationCodeableConcept),
		Text:       req.MedicationCodeableConcept.Text,
		Dosage:     UnknownDosage,
		Prescriber: UnknownPrescriber,
		Date:       UnknownDate,
		Source:     req,
	}
	if s.Text == "" {
		s.Text = UnknownKey
	}
	if len(req.DosageInstruction) > 0 && req.DosageInstruction[0].Text != "" {
		s.Dosage = req.DosageInstruction[0].Text
	}
	if req.Requester.Display != "" {
		s.Prescriber = req.Requester.Display
	}
	if req.AuthoredOn != "" {
		date, _, _ := strings.Cut(req.AuthoredOn, "T")
		s.Date = date
	}
	return s
}
