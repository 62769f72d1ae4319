package fhir

import "encoding/json"

// Patient is the clinical record for one person. The fields the profile
// reconciler touches are typed; every other top-level field in the source
// document is kept in Extra and written back unchanged on save, so a merge
// can never remove data it does not understand.
type Patient struct {
	ResourceType  string
	ID            string
	Name          []HumanName
	BirthDate     string
	Gender        string
	Address       []Address
	Telecom       []ContactPoint
	Extension     []Extension
	Communication []Communication
	Extra         map[string]json.RawMessage
}

func (p *Patient) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := []struct {
		key string
		dst interface{}
	}{
		{"resourceType", &p.ResourceType},
		{"id", &p.ID},
		{"name", &p.Name},
		{"birthDate", &p.BirthDate},
		{"gender", &p.Gender},
		{"address", &p.Address},
		{"telecom", &p.Telecom},
		{"extension", &p.Extension},
		{"communication", &p.Communication},
	}
	for _, f := range known {
		if msg, ok := raw[f.key]; ok {
			if err := json.Unmarshal(msg, f.dst); err != nil {
				return err
			}
			delete(raw, f.key)
		}
	}
	if len(raw) > 0 {
		p.Extra = raw
	}
	return nil
}

func (p Patient) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Extra)+9)
	for k, v := range p.Extra {
		out[k] = v
	}
	if p.ResourceType != "" {
		out["resourceType"] = p.ResourceType
	}
	if p.ID != "" {
		out["id"] = p.ID
	}
	if len(p.Name) > 0 {
		out["name"] = p.Name
	}
	if p.BirthDate != "" {
		out["birthDate"] = p.BirthDate
	}
	if p.Gender != "" {
		out["gender"] = p.Gender
	}
	if len(p.Address) > 0 {
		out["address"] = p.Address
	}
	if len(p.Telecom) > 0 {
		out["telecom"] = p.Telecom
	}
	if len(p.Extension) > 0 {
		out["extension"] = p.Extension
	}
	if len(p.Communication) > 0 {
		out["communication"] = p.Communication
	}
	return json.Marshal(out)
}

// FirstGiven returns the first given name of the first name entry, or "".
func (p *Patient) FirstGiven() string {
	if len(p.Name) > 0 && len(p.Name[0].Given) > 0 {
		return p.Name[0].Given[0]
	}
	return ""
}

// FamilyName returns the family name of the first name entry, or "".
func (p *Patient) FamilyName() string {
	if len(p.Name) > 0 {
		return p.Name[0].Family
	}
	return ""
}

// TelecomValue returns the value of the first telecom entry with the given
// system ("phone" or "email"), or "" when none exists.
func (p *Patient) TelecomValue(system string) string {
	for _, t := range p.Telecom {
		if t.System == system {
			return t.Value
		}
	}
	return ""
}
