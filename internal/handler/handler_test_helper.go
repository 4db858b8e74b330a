package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/middleware"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/render"
	"github.com/inkwell-blog/inkwell/internal/store"
)

// testDB creates an in-memory SQLite database with the required schema for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A pooled second connection would see a different in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'member',
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login_at DATETIME
		);
		CREATE INDEX idx_users_email ON users(email);

		CREATE TABLE posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			slug TEXT NOT NULL UNIQUE,
			subtitle TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL,
			body_html TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			author_id INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (author_id) REFERENCES users(id)
		);
		CREATE INDEX idx_posts_slug ON posts(slug);
		CREATE INDEX idx_posts_author_id ON posts(author_id);

		CREATE TABLE comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			post_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			body TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);
		CREATE INDEX idx_comments_post_id ON comments(post_id);

		CREATE TABLE contact_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			ip_address TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			is_read BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL DEFAULT 'info',
			category TEXT NOT NULL DEFAULT 'system',
			message TEXT NOT NULL,
			user_id INTEGER,
			ip_address TEXT NOT NULL DEFAULT '',
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
		);

		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}

// testSessionManager creates an in-memory session manager for testing.
func testSessionManager() *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = time.Hour
	return sm
}

// testRenderer builds a renderer over minimal templates that expose just
// enough structure for handlers to execute.
func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	page := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{{define "content"}}` + body + `{{end}}`)}
	}

	templates := fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}{{if .Flash}}[{{.FlashType}}] {{.Flash}}{{end}}{{template "content" .}}{{end}}`),
		},
		"site/index.html":     page(`{{range .Data.Posts}}<h2>{{.Title}}</h2><span>{{.AuthorName}}</span>{{end}}`),
		"site/post.html":      page(`<h1>{{.Data.Post.Title}}</h1>{{.Data.Post.BodyHtml | safe}}{{range .Data.Comments}}<p>{{.Body}} - {{.AuthorName}}</p>{{end}}`),
		"site/about.html":     page(`about`),
		"site/contact.html":   page(`contact`),
		"site/post_form.html": page(`<form action="{{.Data.Action}}"></form>`),
		"site/messages.html":  page(`{{range .Data.Messages}}<li>{{.Reference}}</li>{{end}}`),
		"auth/login.html":     page(`login form`),
		"auth/register.html":  page(`register form`),
	}

	r, err := render.New(render.Config{
		TemplatesFS:    templates,
		SessionManager: sm,
	})
	if err != nil {
		t.Fatalf("failed to build test renderer: %v", err)
	}
	return r
}

// createTestUser inserts a user with a real argon2id hash of the given password.
func createTestUser(t *testing.T, db *sql.DB, email, password, role string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestPost inserts a post authored by the given user.
func createTestPost(t *testing.T, db *sql.DB, authorID int64, title string) store.Post {
	t.Helper()

	now := time.Now()
	post, err := store.New(db).CreatePost(context.Background(), store.CreatePostParams{
		Title:     title,
		Slug:      "slug-" + title,
		Subtitle:  "subtitle",
		Body:      "body",
		BodyHtml:  "<p>body</p>",
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// withURLParams attaches chi URL parameters to a request.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withUser attaches a user to the request context the way LoadUser does.
func withUser(r *http.Request, user store.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, user))
}

// serveWithSession runs a handler inside the session middleware so session
// reads and writes work.
func serveWithSession(sm *scs.SessionManager, h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	sm.LoadAndSave(h).ServeHTTP(rec, r)
	return rec
}

// mustGetUser loads a user by ID or fails the test.
func mustGetUser(t *testing.T, h *FrontendHandler, id int64) store.User {
	t.Helper()
	user, err := h.queries.GetUserByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetUserByID(%d): %v", id, err)
	}
	return user
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// adminRole and memberRole keep test call sites short.
const (
	adminRole  = model.RoleAdmin
	memberRole = model.RoleMember
)
