package profile

// Sentinel values a derived profile carries for fields the clinical record
// does not supply. The merge treats them as "no user input" and leaves the
// record alone.
const (
	SentinelNA      = "N/A"
	SentinelUnknown = "unknown"
)

// Profile is the flat, editable projection of one clinical record. Religion
// is profile-only: the record shape has no destination for it, so it lives
// solely in the profile file.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Race      string `json:"race"`
	Ethnicity string `json:"ethnicity"`
	Language  string `json:"language"`
	Religion  string `json:"religion"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	PatientID string `json:"patient_id,omitempty"`
}
