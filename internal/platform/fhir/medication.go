package fhir

// Dosage is the slice of MedicationRequest.dosageInstruction this service
// reads; only the free-text instruction matters here.
type Dosage struct {
	Text string `json:"text,omitempty"`
}

// MedicationRequest is a prescription order. Requests are read-only in this
// system, so unlike Patient there is no unknown-field preservation.
type MedicationRequest struct {
	ResourceType              string            `json:"resourceType,omitempty"`
	ID                        string            `json:"id,omitempty"`
	Status                    string            `json:"status,omitempty"`
	Intent                    string            `json:"intent,omitempty"`
	MedicationCodeableConcept CodeableConcept   `json:"medicationCodeableConcept,omitempty"`
	DosageInstruction         []Dosage          `json:"dosageInstruction,omitempty"`
	Requester                 Reference         `json:"requester,omitempty"`
	Subject                   Reference         `json:"subject,omitempty"`
	Encounter                 Reference         `json:"encounter,omitempty"`
	ReasonCode                []CodeableConcept `json:"reasonCode,omitempty"`
	AuthoredOn                string            `json:"authoredOn,omitempty"`
}

// Performer is a MedicationAdministration.performer entry.
type Performer struct {
	Actor Reference `json:"actor"`
}

// MedicationAdministration records one dose actually taken. Administrations
// are append-only events: created once, never updated or deleted.
type MedicationAdministration struct {
	ResourceType              string            `json:"resourceType"`
	ID                        string            `json:"id"`
	Status                    string            `json:"status"`
	MedicationCodeableConcept CodeableConcept   `json:"medicationCodeableConcept"`
	Subject                   *Reference        `json:"subject,omitempty"`
	Context                   *Reference        `json:"context,omitempty"`
	EffectiveDateTime         string            `json:"effectiveDateTime,omitempty"`
	ReasonCode                []CodeableConcept `json:"reasonCode,omitempty"`
	Performer                 []Performer       `json:"performer,omitempty"`
}
