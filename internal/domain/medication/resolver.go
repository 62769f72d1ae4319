package medication

import (
	"strings"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// TakenOn reports whether at least one administration matches the medication
// key and was recorded on the given date. Administrations arrive in append
// order, unsorted by date; the scan checks every one. The date component is
// the substring of the effective timestamp preceding the time separator, so
// a date-only timestamp matches as-is and an empty timestamp never matches.
func TakenOn(key, today string, admins []fhir.MedicationAdministration) bool {
	for _, a := range admins {
		if KeyFor(a.MedicationCodeableConcept) != key {
			continue
		}
		if a.EffectiveDateTime == "" {
			continue
		}
		date, _, _ := strings.Cut(a.EffectiveDateTime, "T")
		if date == today {
			return true
		}
	}
	return false
}
