// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSessionSecretLength is the minimum required length for the session
// secret. AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"INKWELL_DB_PATH" envDefault:"./data/inkwell.db"`
	SessionSecret string `env:"INKWELL_SESSION_SECRET,required"`
	ServerHost    string `env:"INKWELL_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"INKWELL_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"INKWELL_ENV" envDefault:"development"`
	LogLevel      string `env:"INKWELL_LOG_LEVEL" envDefault:"info"`

	// Seed admin account, created on startup when absent. Admin capability
	// is assigned here explicitly; registration always creates members.
	AdminEmail    string `env:"INKWELL_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"INKWELL_ADMIN_PASSWORD" envDefault:"changeme"`
	AdminName     string `env:"INKWELL_ADMIN_NAME" envDefault:"Administrator"`

	// Contact form mail relay. Credentials are injected into the mailer at
	// construction, never read from ambient globals.
	SMTPHost     string `env:"INKWELL_SMTP_HOST"`
	SMTPPort     int    `env:"INKWELL_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"INKWELL_SMTP_USERNAME"`
	SMTPPassword string `env:"INKWELL_SMTP_PASSWORD"`
	MailFrom     string `env:"INKWELL_MAIL_FROM"`
	MailTo       string `env:"INKWELL_MAIL_TO"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MailEnabled returns true if the contact form mail relay is configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != "" && c.MailTo != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("INKWELL_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("INKWELL_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("INKWELL_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
