package fhir

import "encoding/json"

// Patient-level extension URLs the profile reconciler reads and writes.
const (
	ExtensionUSCoreRace      = "http://hl7.org/fhir/us/core/StructureDefinition/us-core-race"
	ExtensionUSCoreEthnicity = "http://hl7.org/fhir/us/core/StructureDefinition/us-core-ethnicity"

	// extensionTextChild is the url of the child extension holding the
	// human-readable value inside a us-core race/ethnicity extension.
	extensionTextChild = "text"
)

// Extension models a FHIR extension. Only the url, valueString, and nested
// extension fields are typed; any other value[x] payload (valueCoding,
// valueDecimal, valueAddress, ...) is preserved verbatim in Extra so a
// record rewrite never drops data this service does not model.
type Extension struct {
	URL         string
	ValueString string
	Extension   []Extension
	Extra       map[string]json.RawMessage
}

func (e *Extension) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if msg, ok := raw["url"]; ok {
		if err := json.Unmarshal(msg, &e.URL); err != nil {
			return err
		}
		delete(raw, "url")
	}
	if msg, ok := raw["valueString"]; ok {
		if err := json.Unmarshal(msg, &e.ValueString); err != nil {
			return err
		}
		delete(raw, "valueString")
	}
	if msg, ok := raw["extension"]; ok {
		if err := json.Unmarshal(msg, &e.Extension); err != nil {
			return err
		}
		delete(raw, "extension")
	}
	if len(raw) > 0 {
		e.Extra = raw
	}
	return nil
}

func (e Extension) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(e.Extra)+3)
	for k, v := range e.Extra {
		out[k] = v
	}
	out["url"] = e.URL
	if e.ValueString != "" {
		out["valueString"] = e.ValueString
	}
	if len(e.Extension) > 0 {
		out["extension"] = e.Extension
	}
	return json.Marshal(out)
}

// FindExtension returns the first extension with the given url, or nil.
func FindExtension(exts []Extension, url string) *Extension {
	for i := range exts {
		if exts[i].URL == url {
			return &exts[i]
		}
	}
	return nil
}

// TextValue returns the valueString of the child extension named "text",
// or "" when no such child exists.
func (e *Extension) TextValue() string {
	if child := FindExtension(e.Extension, extensionTextChild); child != nil {
		return child.ValueString
	}
	return ""
}

// SetTextValue overwrites the "text" child's valueString, creating the
// child when absent. Sibling children (ombCategory codings etc.) are left
// untouched.
func (e *Extension) SetTextValue(v string) {
	if child := FindExtension(e.Extension, extensionTextChild); child != nil {
		child.ValueString = v
		return
	}
	e.Extension = append(e.Extension, Extension{URL: extensionTextChild, ValueString: v})
}

// NewTextExtension builds the full nested structure for a race/ethnicity
// style extension carrying a single text child.
func NewTextExtension(url, text string) Extension {
	return Extension{
		URL:       url,
		Extension: []Extension{{URL: extensionTextChild, ValueString: text}},
	}
}
