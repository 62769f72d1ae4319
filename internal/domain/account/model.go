package account

// Account is one login identity. PatientID pins the account to the clinical
// record it may read and write; an empty value means the first record in the
// store serves the session.
type Account struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	PatientID    string `json:"patient_id,omitempty"`
}
