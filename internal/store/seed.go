package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/model"
)

// SeedParams holds the admin account created when the database is empty.
type SeedParams struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Seed creates the admin user when absent. The admin capability is assigned
// here and only here; registration always creates members.
func Seed(ctx context.Context, db *sql.DB, params SeedParams) error {
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, params.AdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(params.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        params.AdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         params.AdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)

	return nil
}
