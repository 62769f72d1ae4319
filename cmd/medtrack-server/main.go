package main

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medtrack/medtrack/internal/config"
	"github.com/medtrack/medtrack/internal/domain/account"
	"github.com/medtrack/medtrack/internal/domain/adherence"
	"github.com/medtrack/medtrack/internal/domain/medication"
	"github.com/medtrack/medtrack/internal/domain/patient"
	"github.com/medtrack/medtrack/internal/domain/profile"
	"github.com/medtrack/medtrack/internal/platform/auth"
	"github.com/medtrack/medtrack/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medtrack-server",
		Short: "Medication self-tracking API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the medication tracking API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed data files",
	}

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Create or replace a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			patientID, _ := cmd.Flags().GetString("patient-id")
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.AccountsPath()), 0o755); err != nil {
				return err
			}

			hash, err := account.HashPassword(password)
			if err != nil {
				return err
			}

			ctx := context.Background()
			repo := account.NewFileRepo(cfg.AccountsPath())
			accounts, err := loadAccounts(ctx, repo, username)
			if err != nil {
				return err
			}
			accounts = append(accounts, account.Account{
				Username:     username,
				PasswordHash: hash,
				PatientID:    patientID,
			})
			if err := repo.SaveAll(ctx, accounts); err != nil {
				return err
			}

			fmt.Printf("Account %q written to %s\n", username, cfg.AccountsPath())
			return nil
		},
	}
	accountCmd.Flags().String("username", "", "Login name")
	accountCmd.Flags().String("password", "", "Password (stored as a bcrypt hash)")
	accountCmd.Flags().String("patient-id", "", "Clinical record id the account is pinned to")
	cmd.AddCommand(accountCmd)

	return cmd
}

// loadAccounts returns every stored account except the one being replaced.
func loadAccounts(ctx context.Context, repo *account.FileRepo, replacing string) ([]account.Account, error) {
	all, err := repo.All(ctx)
	if err != nil {
		return nil, err
	}
	kept := all[:0]
	for _, a := range all {
		if a.Username != replacing {
			kept = append(kept, a)
		}
	}
	return kept, nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	secret := cfg.JWTSecret
	if secret == "" {
		// Development only: Validate rejects a missing secret otherwise.
		// Tokens die with the process.
		var buf [32]byte
		if _, err := crypto_rand.Read(buf[:]); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate dev secret")
		}
		secret = hex.EncodeToString(buf[:])
		logger.Warn().Msg("JWT_SECRET not set; using an ephemeral development secret")
	}

	// Data directories must exist before the first append
	for _, p := range []string{cfg.PatientPath(), cfg.MedRequestPath(), cfg.MedAdminPath(), cfg.ProfilePath(), cfg.AccountsPath()} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			logger.Fatal().Err(err).Str("path", p).Msg("failed to create data directory")
		}
	}

	// Repositories over the flat record files
	patientRepo := patient.NewNDJSONRepo(cfg.PatientPath())
	requestRepo := medication.NewRequestNDJSONRepo(cfg.MedRequestPath())
	adminRepo := medication.NewAdministrationNDJSONRepo(cfg.MedAdminPath())
	profileRepo := profile.NewFileRepo(cfg.ProfilePath())
	accountRepo := account.NewFileRepo(cfg.AccountsPath())

	// Services
	accountSvc := account.NewService(accountRepo, logger)
	medicationSvc := medication.NewService(requestRepo, adminRepo, logger)
	profileSvc := profile.NewService(profileRepo, patientRepo, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Unauthenticated routes
	public := e.Group("/api/v1")
	tokenTTL := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	account.NewHandler(accountSvc, secret, tokenTTL).RegisterRoutes(public)

	// Authenticated routes
	api := e.Group("/api/v1")
	if cfg.IsDev() && cfg.JWTSecret == "" {
		logger.Warn().Msg("development mode: requests run as the dev identity without tokens")
		api.Use(auth.DevMiddleware("dev", ""))
	} else {
		api.Use(auth.Middleware(secret))
	}
	medication.NewHandler(medicationSvc).RegisterRoutes(api)
	profile.NewHandler(profileSvc).RegisterRoutes(api)
	adherence.NewHandler().RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("data_dir", cfg.DataDir).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
