package profile

import (
	"strings"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// demographicExtensions maps profile fields to the patient-level extension
// URLs that carry them, so load and merge agree on where each value lives.
var demographicExtensions = map[string]string{
	"race":      fhir.ExtensionUSCoreRace,
	"ethnicity": fhir.ExtensionUSCoreEthnicity,
}

// FromPatient derives a profile from the identity and contact fields of a
// clinical record. Missing fields degrade to sentinels, never errors. Race,
// ethnicity and language stay empty here; FromPatientDetailed fills them.
func FromPatient(p *fhir.Patient) *Profile {
	prof := &Profile{
		FirstName: p.FirstGiven(),
		LastName:  p.FamilyName(),
		BirthDate: orSentinel(p.BirthDate, SentinelNA),
		Gender:    orSentinel(p.Gender, SentinelUnknown),
		Email:     orSentinel(p.TelecomValue("email"), SentinelNA),
		Phone:     orSentinel(p.TelecomValue("phone"), SentinelNA),
		Address:   orSentinel(addressText(p), SentinelNA),
		PatientID: p.ID,
	}
	return prof
}

// FromPatientDetailed derives the full profile, additionally reading race
// and ethnicity from their demographic extensions and language from the
// first communication entry.
func FromPatientDetailed(p *fhir.Patient) *Profile {
	prof := FromPatient(p)
	if ext := fhir.FindExtension(p.Extension, demographicExtensions["race"]); ext != nil {
		prof.Race = ext.TextValue()
	}
	if ext := fhir.FindExtension(p.Extension, demographicExtensions["ethnicity"]); ext != nil {
		prof.Ethnicity = ext.TextValue()
	}
	if len(p.Communication) > 0 && p.Communication[0].Language != nil {
		prof.Language = p.Communication[0].Language.Text
	}
	return prof
}

// MergeInto writes the profile's edited fields back into the clinical
// record. The merge is field-level and additive-or-overwrite: a sentinel or
// empty profile value skips its field, and nothing in the record is ever
// removed. Religion has no destination in the record and is skipped
// entirely.
func MergeInto(prof *Profile, p *fhir.Patient) {
	mergeName(prof, p)

	if present(prof.BirthDate, SentinelNA, SentinelUnknown) {
		p.BirthDate = prof.BirthDate
	}
	if present(prof.Gender, SentinelNA, SentinelUnknown) {
		p.Gender = prof.Gender
	}

	mergeTelecom(p, "phone", prof.Phone)
	mergeTelecom(p, "email", prof.Email)
	mergeAddress(p, prof.Address)
	mergeExtensionText(p, demographicExtensions["race"], prof.Race)
	mergeExtensionText(p, demographicExtensions["ethnicity"], prof.Ethnicity)
	mergeLanguage(p, prof.Language)
}

func mergeName(prof *Profile, p *fhir.Patient) {
	if prof.FirstName == "" && prof.LastName == "" {
		return
	}
	if len(p.Name) == 0 {
		p.Name = append(p.Name, fhir.HumanName{})
	}
	if prof.FirstName != "" {
		if len(p.Name[0].Given) == 0 {
			p.Name[0].Given = []string{prof.FirstName}
		} else {
			p.Name[0].Given[0] = prof.FirstName
		}
	}
	if prof.LastName != "" {
		p.Name[0].Family = prof.LastName
	}
}

func mergeTelecom(p *fhir.Patient, system, value string) {
	if !present(value, SentinelNA) {
		return
	}
	for i := range p.Telecom {
		if p.Telecom[i].System == system {
			p.Telecom[i].Value = value
			return
		}
	}
	p.Telecom = append(p.Telecom, fhir.ContactPoint{System: system, Value: value, Use: "home"})
}

func mergeAddress(p *fhir.Patient, text string) {
	if !present(text, SentinelNA) {
		return
	}
	if len(p.Address) == 0 {
		p.Address = append(p.Address, fhir.Address{Text: text})
		return
	}
	p.Address[0].Text = text
}

func mergeExtensionText(p *fhir.Patient, url, value string) {
	if value == "" {
		return
	}
	if ext := fhir.FindExtension(p.Extension, url); ext != nil {
		ext.SetTextValue(value)
		return
	}
	p.Extension = append(p.Extension, fhir.NewTextExtension(url, value))
}

func mergeLanguage(p *fhir.Patient, value string) {
	if value == "" {
		return
	}
	if len(p.Communication) == 0 {
		p.Communication = append(p.Communication, fhir.Communication{
			Language: &fhir.CodeableConcept{Text: value},
		})
		return
	}
	if p.Communication[0].Language == nil {
		p.Communication[0].Language = &fhir.CodeableConcept{}
	}
	p.Communication[0].Language.Text = value
}

// addressText returns the first address's text representation, synthesizing
// one from its parts when the record carries no free-text form.
func addressText(p *fhir.Patient) string {
	if len(p.Address) == 0 {
		return ""
	}
	addr := p.Address[0]
	if addr.Text != "" {
		return addr.Text
	}
	var parts []string
	parts = append(parts, addr.Line...)
	if addr.City != "" {
		parts = append(parts, addr.City)
	}
	if addr.State != "" {
		parts = append(parts, addr.State)
	}
	if addr.PostalCode != "" {
		parts = append(parts, addr.PostalCode)
	}
	return strings.Join(parts, ", ")
}

func orSentinel(v, sentinel string) string {
	if v == "" {
		return sentinel
	}
	return v
}

// present reports whether v carries user input, i.e. it is non-empty and
// none of the sentinels.
func present(v string, sentinels ...string) bool {
	if v == "" {
		return false
	}
	for _, s := range sentinels {
		if v == s {
			return false
		}
	}
	return true
}
