package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DataDir         string   `mapstructure:"DATA_DIR"`
	PatientFile     string   `mapstructure:"PATIENT_FILE"`
	MedRequestFile  string   `mapstructure:"MED_REQUEST_FILE"`
	MedAdminFile    string   `mapstructure:"MED_ADMIN_FILE"`
	ProfileFile     string   `mapstructure:"PROFILE_FILE"`
	AccountsFile    string   `mapstructure:"ACCOUNTS_FILE"`
	JWTSecret       string   `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes int      `mapstructure:"TOKEN_TTL_MINUTES"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DATA_DIR", "fhir_data")
	v.SetDefault("PATIENT_FILE", "patient/Patient.ndjson")
	v.SetDefault("MED_REQUEST_FILE", "medication_request/MedicationRequest.ndjson")
	v.SetDefault("MED_ADMIN_FILE", "medication_administration/MedicationAdministration.ndjson")
	v.SetDefault("PROFILE_FILE", "editable_profile.json")
	v.SetDefault("ACCOUNTS_FILE", "accounts.json")
	v.SetDefault("TOKEN_TTL_MINUTES", 60)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATA_DIR")
	v.BindEnv("PATIENT_FILE")
	v.BindEnv("MED_REQUEST_FILE")
	v.BindEnv("MED_ADMIN_FILE")
	v.BindEnv("PROFILE_FILE")
	v.BindEnv("ACCOUNTS_FILE")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("TOKEN_TTL_MINUTES")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// a JWT secret is mandatory so that real token verification is enforced; in
// development a missing secret falls back to an ephemeral dev secret.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf(
			"JWT_SECRET must be set when ENV=%q. "+
				"Refusing to start without token signing configuration. "+
				"Use ENV=development for local work without a secret", c.Env)
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", c.TokenTTLMinutes)
	}
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	return nil
}

// resolve joins a configured file path to the data directory unless the
// path is already absolute.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

// PatientPath returns the location of the Patient NDJSON store.
func (c *Config) PatientPath() string { return c.resolve(c.PatientFile) }

// MedRequestPath returns the location of the MedicationRequest NDJSON store.
func (c *Config) MedRequestPath() string { return c.resolve(c.MedRequestFile) }

// MedAdminPath returns the location of the MedicationAdministration NDJSON store.
func (c *Config) MedAdminPath() string { return c.resolve(c.MedAdminFile) }

// ProfilePath returns the location of the editable profile document.
func (c *Config) ProfilePath() string { return c.resolve(c.ProfileFile) }

// AccountsPath returns the location of the login accounts file.
func (c *Config) AccountsPath() string { return c.resolve(c.AccountsFile) }
