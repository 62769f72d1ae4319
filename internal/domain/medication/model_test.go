package medication

import (
	"testing"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

func rxConcept(code, text string) fhir.CodeableConcept {
	return fhir.CodeableConcept{
		Coding: []fhir.Coding{{System: fhir.SystemRxNorm, Code: code, Display: text}},
		Text:   text,
	}
}

func TestKeyFor(t *testing.T) {
	cases := []struct {
		name    string
		concept fhir.CodeableConcept
		want    string
	}{
		{"code wins over text", rxConcept("314076", "Lisinopril 10 MG Oral Tablet"), "314076"},
		{"text when no coding", fhir.CodeableConcept{Text: "Fish oil"}, "Fish oil"},
		{"text when code empty", fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: fhir.SystemRxNorm}},
			Text:   "Fish oil",
		}, "Fish oil"},
		{"foreign system ignored", fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: "http://snomed.info/sct", Code: "123"}},
			Text:   "Aspirin",
		}, "Aspirin"},
		{"nothing at all", fhir.CodeableConcept{}, UnknownKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeyFor(tc.concept); got != tc.want {
				t.Errorf("KeyFor() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKeyFor_Deterministic(t *testing.T) {
	c := rxConcept("314076", "Lisinopril 10 MG Oral Tablet")
	first := KeyFor(c)
	for i := 0; i < 5; i++ {
		if KeyFor(c) != first {
			t.Fatal("key derivation is not stable across calls")
		}
	}
}

func TestExtract_PartitionsByStatus(t *testing.T) {
	requests := []fhir.MedicationRequest{
		{ResourceType: "MedicationRequest", Status: "active", MedicationCodeableConcept: rxConcept("314076", "Lisinopril")},
		{ResourceType: "MedicationRequest", Status: "stopped", MedicationCodeableConcept: rxConcept("197361", "Amlodipine")},
		{ResourceType: "MedicationRequest", Status: "active", MedicationCodeableConcept: rxConcept("860975", "Metformin")},
		{ResourceType: "MedicationRequest", Status: "completed", MedicationCodeableConcept: rxConcept("310965", "Ibuprofen")},
	}

	active, inactive := Extract(requests)

	if len(active) != 2 || len(inactive) != 2 {
		t.Fatalf("got %d active, %d inactive; want 2 and 2", len(active), len(inactive))
	}
	// Original order preserved within each partition.
	if active[0].Key != "314076" || active[1].Key != "860975" {
		t.Errorf("active order: %s, %s", active[0].Key, active[1].Key)
	}
	if inactive[0].Key != "197361" || inactive[1].Key != "310965" {
		t.Errorf("inactive order: %s, %s", inactive[0].Key, inactive[1].Key)
	}
}

func TestExtract_SkipsForeignResources(t *testing.T) {
	requests := []fhir.MedicationRequest{
		{ResourceType: "Patient"},
		{ResourceType: "MedicationRequest", Status: "active", MedicationCodeableConcept: rxConcept("314076", "Lisinopril")},
	}
	active, inactive := Extract(requests)
	if len(active) != 1 || len(inactive) != 0 {
		t.Errorf("got %d active, %d inactive; want 1 and 0", len(active), len(inactive))
	}
}

func TestExtract_MissingFieldsDegradeToPlaceholders(t *testing.T) {
	active, inactive := Extract([]fhir.MedicationRequest{
		{ResourceType: "MedicationRequest", Status: "unknown"},
	})
	if len(active) != 0 || len(inactive) != 1 {
		t.Fatalf("got %d active, %d inactive", len(active), len(inactive))
	}

	s := inactive[0]
	if s.Key != UnknownKey {
		t.Errorf("Key = %q, want %q", s.Key, UnknownKey)
	}
	if s.Text != UnknownKey {
		t.Errorf("Text = %q, want %q", s.Text, UnknownKey)
	}
	if s.Dosage != UnknownDosage {
		t.Errorf("Dosage = %q, want %q", s.Dosage, UnknownDosage)
	}
	if s.Prescriber != UnknownPrescriber {
		t.Errorf("Prescriber = %q, want %q", s.Prescriber, UnknownPrescriber)
	}
	if s.Date != UnknownDate {
		t.Errorf("Date = %q, want %q", s.Date, UnknownDate)
	}
}

func TestExtract_PopulatedFields(t *testing.T) {
	active, _ := Extract([]fhir.MedicationRequest{{
		ResourceType:              "MedicationRequest",
		Status:                    "active",
		MedicationCodeableConcept: rxConcept("314076", "Lisinopril 10 MG Oral Tablet"),
		DosageInstruction:         []fhir.Dosage{{Text: "Take one tablet daily"}},
		Requester:                 fhir.Reference{Display: "Dr. Maria Sanchez"},
		AuthoredOn:                "2023-11-04T09:30:00-05:00",
	}})
	if len(active) != 1 {
		t.Fatal("expected one active summary")
	}
	s := active[0]
	if s.Dosage != "Take one tablet daily" {
		t.Errorf("Dosage = %q", s.Dosage)
	}
	if s.Prescriber != "Dr. Maria Sanchez" {
		t.Errorf("Prescriber = %q", s.Prescriber)
	}
	if s.Date != "2023-11-04" {
		t.Errorf("Date = %q, want 2023-11-04", s.Date)
	}
}
