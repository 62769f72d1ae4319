package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("DATA_DIR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.DataDir != "fhir_data" {
		t.Errorf("expected default data dir fhir_data, got %s", cfg.DataDir)
	}
	if cfg.TokenTTLMinutes != 60 {
		t.Errorf("expected default token TTL 60, got %d", cfg.TokenTTLMinutes)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("DATA_DIR", "/var/lib/medtrack")
	os.Setenv("PORT", "9090")
	defer os.Unsetenv("DATA_DIR")
	defer os.Unsetenv("PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/var/lib/medtrack" {
		t.Errorf("expected DATA_DIR override, got %s", cfg.DataDir)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected PORT override, got %s", cfg.Port)
	}
}

func TestConfig_Paths(t *testing.T) {
	c := &Config{
		DataDir:        "fhir_data",
		PatientFile:    "patient/Patient.ndjson",
		MedRequestFile: "medication_request/MedicationRequest.ndjson",
		MedAdminFile:   "medication_administration/MedicationAdministration.ndjson",
		ProfileFile:    "editable_profile.json",
		AccountsFile:   "/etc/medtrack/accounts.json",
	}

	if got := c.PatientPath(); got != filepath.Join("fhir_data", "patient", "Patient.ndjson") {
		t.Errorf("PatientPath() = %s", got)
	}
	if got := c.ProfilePath(); got != filepath.Join("fhir_data", "editable_profile.json") {
		t.Errorf("ProfilePath() = %s", got)
	}
	// Absolute paths bypass the data dir.
	if got := c.AccountsPath(); got != "/etc/medtrack/accounts.json" {
		t.Errorf("AccountsPath() = %s", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	c := &Config{Env: "production", DataDir: "fhir_data", TokenTTLMinutes: 60}
	if err := c.Validate(); err == nil {
		t.Error("expected error when JWT_SECRET missing in production")
	}

	c.JWTSecret = "secret"
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	c.TokenTTLMinutes = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for non-positive token TTL")
	}

	dev := &Config{Env: "development", DataDir: "fhir_data", TokenTTLMinutes: 60}
	if err := dev.Validate(); err != nil {
		t.Errorf("development without secret should validate, got %v", err)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
