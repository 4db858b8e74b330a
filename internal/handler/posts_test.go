// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/inkwell-blog/inkwell/internal/store"
)

func TestCreatePost(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewPostHandler(db, testRenderer(t, sm))

	admin := createTestUser(t, db, "admin@example.com", "somepassword", adminRole)

	postForm := func(title string) *http.Request {
		req := formRequest(RouteNewPost, url.Values{
			"title":    {title},
			"subtitle": {"a subtitle"},
			"body":     {"Some **bold** text."},
		})
		return withUser(req, admin)
	}

	t.Run("creates post with rendered markdown", func(t *testing.T) {
		rec := serveWithSession(sm, h.Create, postForm("Fresh Post"))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}

		post, err := h.queries.GetPostByTitle(context.Background(), "Fresh Post")
		if err != nil {
			t.Fatalf("post not created: %v", err)
		}
		if post.Slug != "fresh-post" {
			t.Errorf("slug = %q, want %q", post.Slug, "fresh-post")
		}
		if !strings.Contains(post.BodyHtml, "<strong>bold</strong>") {
			t.Errorf("body_html = %q, want rendered markdown", post.BodyHtml)
		}
		if post.AuthorID != admin.ID {
			t.Errorf("author_id = %d, want %d", post.AuthorID, admin.ID)
		}
	})

	t.Run("duplicate title is rejected", func(t *testing.T) {
		rec := serveWithSession(sm, h.Create, postForm("Fresh Post"))

		if loc := rec.Header().Get("Location"); loc != RouteNewPost {
			t.Errorf("Location = %q, want %q", loc, RouteNewPost)
		}

		count, err := h.queries.CountPosts(context.Background())
		if err != nil {
			t.Fatalf("CountPosts: %v", err)
		}
		if count != 1 {
			t.Errorf("post count = %d, want 1", count)
		}
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		req := formRequest(RouteNewPost, url.Values{"body": {"text"}})
		rec := serveWithSession(sm, h.Create, withUser(req, admin))

		if loc := rec.Header().Get("Location"); loc != RouteNewPost {
			t.Errorf("Location = %q, want %q", loc, RouteNewPost)
		}
	})
}

func TestUpdatePost(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewPostHandler(db, testRenderer(t, sm))

	admin := createTestUser(t, db, "admin@example.com", "somepassword", adminRole)
	original := createTestPost(t, db, admin.ID, "Original Title")

	t.Run("edits fields but never the author", func(t *testing.T) {
		req := formRequest("/edit-post/1", url.Values{
			"title":    {"Updated Title"},
			"subtitle": {"new subtitle"},
			"body":     {"updated body"},
		})
		req = withURLParams(req, map[string]string{"id": itoa(original.ID)})
		req = withUser(req, admin)
		rec := serveWithSession(sm, h.Update, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}

		post, err := h.queries.GetPostByID(context.Background(), original.ID)
		if err != nil {
			t.Fatalf("GetPostByID: %v", err)
		}
		if post.Title != "Updated Title" {
			t.Errorf("title = %q, want %q", post.Title, "Updated Title")
		}
		if post.AuthorID != original.AuthorID {
			t.Errorf("author_id changed: %d, want %d", post.AuthorID, original.AuthorID)
		}
	})

	t.Run("missing post is 404", func(t *testing.T) {
		req := formRequest("/edit-post/999", url.Values{
			"title": {"Whatever"},
			"body":  {"text"},
		})
		req = withURLParams(req, map[string]string{"id": "999"})
		req = withUser(req, admin)
		rec := serveWithSession(sm, h.Update, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("title of another post is rejected", func(t *testing.T) {
		createTestPost(t, db, admin.ID, "Taken Title")

		req := formRequest("/edit-post/1", url.Values{
			"title": {"Taken Title"},
			"body":  {"text"},
		})
		req = withURLParams(req, map[string]string{"id": itoa(original.ID)})
		req = withUser(req, admin)
		rec := serveWithSession(sm, h.Update, req)

		if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/edit-post/") {
			t.Errorf("Location = %q, want edit form redirect", loc)
		}
	})
}

func TestDeletePost_CascadesComments(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewPostHandler(db, testRenderer(t, sm))

	admin := createTestUser(t, db, "admin@example.com", "somepassword", adminRole)
	post := createTestPost(t, db, admin.ID, "Doomed Post")

	queries := store.New(db)
	if _, err := queries.CreateComment(context.Background(), store.CreateCommentParams{
		PostID: post.ID,
		UserID: admin.ID,
		Body:   "soon gone",
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/delete/1", nil)
	req = withURLParams(req, map[string]string{"id": itoa(post.ID)})
	req = withUser(req, admin)
	rec := serveWithSession(sm, h.Delete, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != RouteRoot {
		t.Errorf("Location = %q, want %q", loc, RouteRoot)
	}

	if _, err := queries.GetPostByID(context.Background(), post.ID); err == nil {
		t.Error("post still present after delete")
	}
	count, err := queries.CountCommentsForPost(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("CountCommentsForPost: %v", err)
	}
	if count != 0 {
		t.Errorf("comment count = %d after post delete, want 0", count)
	}
}

func TestDeletePost_Missing(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewPostHandler(db, testRenderer(t, sm))

	admin := createTestUser(t, db, "admin@example.com", "somepassword", adminRole)

	req := httptest.NewRequest(http.MethodPost, "/delete/42", nil)
	req = withURLParams(req, map[string]string{"id": "42"})
	req = withUser(req, admin)
	rec := serveWithSession(sm, h.Delete, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
