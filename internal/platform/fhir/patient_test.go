package fhir

import (
	"encoding/json"
	"strings"
	"testing"
)

const samplePatient = `{
	"resourceType": "Patient",
	"id": "pat-1",
	"name": [{"use": "official", "given": ["Tarun", "K"], "family": "Anand"}],
	"birthDate": "1950-03-12",
	"gender": "male",
	"maritalStatus": {"text": "Married"},
	"telecom": [
		{"system": "phone", "value": "555-0101", "use": "home"},
		{"system": "email", "value": "tarun@example.com"}
	],
	"address": [{"line": ["12 Peach St"], "city": "Atlanta", "state": "GA", "postalCode": "30332"}],
	"extension": [
		{
			"url": "http://hl7.org/fhir/us/core/StructureDefinition/us-core-race",
			"extension": [
				{"url": "ombCategory", "valueCoding": {"system": "urn:oid:2.16.840.1.113883.6.238", "code": "2106-3", "display": "White"}},
				{"url": "text", "valueString": "White"}
			]
		},
		{"url": "http://hl7.org/fhir/StructureDefinition/patient-birthPlace", "valueAddress": {"city": "Boston"}}
	],
	"communication": [{"language": {"text": "English"}, "preferred": true}]
}`

func decodePatient(t *testing.T, data string) *Patient {
	t.Helper()
	var p Patient
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		t.Fatalf("unmarshal patient: %v", err)
	}
	return &p
}

func TestPatientUnmarshal_TypedFields(t *testing.T) {
	p := decodePatient(t, samplePatient)

	if p.ID != "pat-1" {
		t.Errorf("ID = %q, want pat-1", p.ID)
	}
	if got := p.FirstGiven(); got != "Tarun" {
		t.Errorf("FirstGiven() = %q, want Tarun", got)
	}
	if got := p.FamilyName(); got != "Anand" {
		t.Errorf("FamilyName() = %q, want Anand", got)
	}
	if p.BirthDate != "1950-03-12" {
		t.Errorf("BirthDate = %q", p.BirthDate)
	}
	if got := p.TelecomValue("email"); got != "tarun@example.com" {
		t.Errorf("TelecomValue(email) = %q", got)
	}
	if got := p.TelecomValue("phone"); got != "555-0101" {
		t.Errorf("TelecomValue(phone) = %q", got)
	}
	if got := p.TelecomValue("fax"); got != "" {
		t.Errorf("TelecomValue(fax) = %q, want empty", got)
	}
}

func TestPatientRoundTrip_PreservesUnknownFields(t *testing.T) {
	p := decodePatient(t, samplePatient)

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal patient: %v", err)
	}
	var back map[string]interface{}
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}

	// maritalStatus is not part of the typed schema but must survive.
	ms, ok := back["maritalStatus"].(map[string]interface{})
	if !ok {
		t.Fatal("maritalStatus dropped on round trip")
	}
	if ms["text"] != "Married" {
		t.Errorf("maritalStatus.text = %v, want Married", ms["text"])
	}

	// The birthPlace extension's valueAddress is untyped but must survive too.
	if !strings.Contains(string(out), `"valueAddress"`) {
		t.Error("birthPlace valueAddress dropped on round trip")
	}
	// And the race ombCategory coding next to the text child.
	if !strings.Contains(string(out), `"valueCoding"`) {
		t.Error("race ombCategory valueCoding dropped on round trip")
	}
}

func TestPatientAccessors_EmptyRecord(t *testing.T) {
	var p Patient
	if p.FirstGiven() != "" || p.FamilyName() != "" || p.TelecomValue("phone") != "" {
		t.Error("accessors on an empty record should return empty strings")
	}
}
