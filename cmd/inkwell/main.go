// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Command inkwell runs the blog server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/handler"
	"github.com/inkwell-blog/inkwell/internal/logging"
	"github.com/inkwell-blog/inkwell/internal/mailer"
	"github.com/inkwell-blog/inkwell/internal/middleware"
	"github.com/inkwell-blog/inkwell/internal/render"
	"github.com/inkwell-blog/inkwell/internal/service"
	"github.com/inkwell-blog/inkwell/internal/session"
	"github.com/inkwell-blog/inkwell/internal/store"
	"github.com/inkwell-blog/inkwell/internal/version"
	"github.com/inkwell-blog/inkwell/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Inkwell - a small blog server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_DB_PATH           SQLite database path (default: ./data/inkwell.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_ADMIN_EMAIL       Seed admin account email\n")
		_, _ = fmt.Fprintf(os.Stderr, "  INKWELL_SMTP_HOST         SMTP relay for the contact form (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("inkwell %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db, store.SeedParams{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		AdminName:     cfg.AdminName,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	var contactMailer handler.MailSender
	if cfg.MailEnabled() {
		contactMailer = mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			To:       cfg.MailTo,
		})
		slog.Info("contact mail relay enabled", "host", cfg.SMTPHost)
	} else {
		slog.Warn("contact mail relay not configured, submissions will only be stored")
	}

	eventService := service.NewEventService(db)
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	frontendHandler := handler.NewFrontendHandler(db, renderer)
	postHandler := handler.NewPostHandler(db, renderer)
	contactHandler := handler.NewContactHandler(db, renderer, contactMailer)
	healthHandler := handler.NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(sessionManager.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Static assets
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	r.Get(handler.RouteHealth, healthHandler.Health)

	// Public pages
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.OptionalLoadUser(sessionManager, db))

		r.Get(handler.RouteRoot, frontendHandler.Index)
		r.Get(handler.RoutePost, frontendHandler.ShowPost)
		r.Get(handler.RouteAbout, frontendHandler.About)
		r.Get(handler.RouteContact, contactHandler.Form)
		r.Post(handler.RouteContact, contactHandler.Submit)

		// Comments require a logged-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessionManager))
			r.Post(handler.RoutePost, frontendHandler.AddComment)
			r.Post(handler.RouteDeleteComment, frontendHandler.DeleteComment)
		})
	})

	// Auth routes with login rate limiting
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(loginProtection.Middleware())

		r.Get(handler.RouteRegister, authHandler.RegisterForm)
		r.Post(handler.RouteRegister, authHandler.Register)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
	})

	// Admin-only authoring and review routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.LoadUser(sessionManager, db))
		r.Use(middleware.RequireAdminWithEventLog(eventService))

		r.Get(handler.RouteNewPost, postHandler.NewForm)
		r.Post(handler.RouteNewPost, postHandler.Create)
		r.Get(handler.RouteEditPost, postHandler.EditForm)
		r.Post(handler.RouteEditPost, postHandler.Update)
		r.Post(handler.RouteDeletePost, postHandler.Delete)
		r.Get(handler.RouteAdminMessages, contactHandler.Messages)
		r.Post(handler.RouteAdminMessageRead, contactHandler.MarkRead)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
