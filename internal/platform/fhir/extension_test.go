package fhir

import (
	"encoding/json"
	"testing"
)

func TestExtensionTextValue(t *testing.T) {
	ext := NewTextExtension(ExtensionUSCoreRace, "Asian")
	if got := ext.TextValue(); got != "Asian" {
		t.Errorf("TextValue() = %q, want Asian", got)
	}

	ext.SetTextValue("White")
	if got := ext.TextValue(); got != "White" {
		t.Errorf("after SetTextValue, TextValue() = %q, want White", got)
	}
	if len(ext.Extension) != 1 {
		t.Errorf("SetTextValue grew children to %d, want 1", len(ext.Extension))
	}
}

func TestSetTextValue_CreatesChild(t *testing.T) {
	ext := Extension{URL: ExtensionUSCoreEthnicity}
	ext.SetTextValue("Not Hispanic or Latino")
	if got := ext.TextValue(); got != "Not Hispanic or Latino" {
		t.Errorf("TextValue() = %q", got)
	}
}

func TestSetTextValue_KeepsSiblings(t *testing.T) {
	raw := `{
		"url": "http://hl7.org/fhir/us/core/StructureDefinition/us-core-race",
		"extension": [
			{"url": "ombCategory", "valueCoding": {"code": "2106-3"}},
			{"url": "text", "valueString": "White"}
		]
	}`
	var ext Extension
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		t.Fatal(err)
	}

	ext.SetTextValue("Asian")

	out, err := json.Marshal(ext)
	if err != nil {
		t.Fatal(err)
	}
	var back struct {
		Extension []map[string]json.RawMessage `json:"extension"`
	}
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Extension) != 2 {
		t.Fatalf("got %d children after edit, want 2", len(back.Extension))
	}
	if _, ok := back.Extension[0]["valueCoding"]; !ok {
		t.Error("ombCategory valueCoding lost on edit")
	}
}

func TestFindExtension(t *testing.T) {
	exts := []Extension{
		NewTextExtension(ExtensionUSCoreRace, "White"),
		NewTextExtension(ExtensionUSCoreEthnicity, "Hispanic or Latino"),
	}
	if e := FindExtension(exts, ExtensionUSCoreEthnicity); e == nil || e.TextValue() != "Hispanic or Latino" {
		t.Error("FindExtension did not return the ethnicity extension")
	}
	if e := FindExtension(exts, "http://example.com/other"); e != nil {
		t.Error("FindExtension returned a match for an unknown url")
	}

	// Returned pointer aliases the slice element, so edits stick.
	FindExtension(exts, ExtensionUSCoreRace).SetTextValue("Asian")
	if exts[0].TextValue() != "Asian" {
		t.Error("edit through FindExtension pointer did not persist")
	}
}
