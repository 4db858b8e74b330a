// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/middleware"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/render"
	"github.com/inkwell-blog/inkwell/internal/service"
	"github.com/inkwell-blog/inkwell/internal/store"
)

// SessionKeyUserID is the session key for storing the authenticated user ID.
const SessionKeyUserID = "user_id"

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		eventService:    service.NewEventService(db),
		loginProtection: lp,
	}
}

// RegisterForm renders the registration page.
// Already-authenticated users are sent back to the homepage.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), SessionKeyUserID); userID > 0 {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/register", render.TemplateData{
		Title: "Register",
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "auth/register")
	}
}

// Register handles the registration form submission. A duplicate email is
// reported and redirected to login rather than leaking hash timing.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRegister) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	name := strings.TrimSpace(r.FormValue("name"))

	if email == "" || password == "" || name == "" {
		flashError(w, r, h.renderer, RouteRegister, "Name, email and password are required")
		return
	}
	if !strings.Contains(email, "@") {
		flashError(w, r, h.renderer, RouteRegister, "Please enter a valid email address")
		return
	}
	if len(password) < 8 {
		flashError(w, r, h.renderer, RouteRegister, "Password must be at least 8 characters")
		return
	}

	clientIP := middleware.GetClientIP(r)

	// Check for an existing account before hashing
	if _, err := h.queries.GetUserByEmail(r.Context(), email); err == nil {
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Registration rejected: duplicate email", nil, clientIP, map[string]any{"email": email})
		flashError(w, r, h.renderer, RouteLogin, FlashDuplicateUser)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logAndInternalError(w, "database error during registration", "error", err)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logAndInternalError(w, "password hash error", "error", err)
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleMember,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Unique constraint race between the existence check and the insert
		slog.Error("failed to create user", "error", err, "email", email)
		flashError(w, r, h.renderer, RouteLogin, FlashDuplicateUser)
		return
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), SessionKeyUserID, user.ID)

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User registered", &user.ID, clientIP, map[string]any{"email": user.Email})

	flashSuccess(w, r, h.renderer, RouteRoot, fmt.Sprintf("Welcome, %s!", user.Name))
}

// LoginForm renders the login page.
// Already-authenticated users are sent back to the homepage.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), SessionKeyUserID); userID > 0 {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Log In",
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "auth/login")
	}
}

// Login handles the login form submission. Unknown email and wrong password
// surface the same flash so accounts cannot be enumerated; the event log
// records which failure actually occurred.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Email and password are required")
		return
	}

	clientIP := middleware.GetClientIP(r)

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login attempt on locked account", nil, clientIP, map[string]any{"email": email})
			flashError(w, r, h.renderer, RouteLogin, fmt.Sprintf("Account temporarily locked. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed: user not found", nil, clientIP, map[string]any{"email": email})
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record failed attempt even for non-existent users to prevent enumeration
		if h.handleFailedAttempt(w, r, email, nil, clientIP) {
			return
		}
		flashError(w, r, h.renderer, RouteLogin, FlashInvalidLogin)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.renderer, RouteLogin, FlashInvalidLogin)
		return
	}

	if !valid {
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed: invalid password", &user.ID, clientIP, map[string]any{"email": email})
		if h.handleFailedAttempt(w, r, email, &user.ID, clientIP) {
			return
		}
		flashError(w, r, h.renderer, RouteLogin, FlashInvalidLogin)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Re-hash if the stored hash uses stale parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	}); err != nil {
		// Don't block login on this error
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged in", &user.ID, clientIP, map[string]any{"email": user.Email})

	flashSuccess(w, r, h.renderer, RouteRoot, fmt.Sprintf("Welcome back, %s!", user.Name))
}

// handleFailedAttempt records a failed login and, when the account locks or
// nears lockout, redirects with a specific flash. Returns true when a
// response was already written.
func (h *AuthHandler) handleFailedAttempt(w http.ResponseWriter, r *http.Request, email string, userID *int64, clientIP string) bool {
	if h.loginProtection == nil {
		return false
	}

	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Account locked due to failed attempts", userID, clientIP, map[string]any{"email": email, "duration": lockDuration.String()})
		flashError(w, r, h.renderer, RouteLogin, fmt.Sprintf("Too many failed attempts. Account locked for %s.", formatDuration(lockDuration)))
		return true
	}

	if remaining := h.loginProtection.GetRemainingAttempts(email); remaining <= 3 && remaining > 0 {
		flashError(w, r, h.renderer, RouteLogin, fmt.Sprintf("Invalid email or password. %d attempts remaining.", remaining))
		return true
	}

	return false
}

// Logout destroys the session. Safe to call when not logged in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), SessionKeyUserID)

	if userID > 0 {
		clientIP := middleware.GetClientIP(r)
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged out", &userID, clientIP, nil)
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	flashAndRedirect(w, r, h.renderer, RouteRoot, "You have been logged out.", "info")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
