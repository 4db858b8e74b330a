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
)

func TestIndex_ListsPostsNewestFirst(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewFrontendHandler(db, testRenderer(t, sm))

	author := createTestUser(t, db, "author@example.com", "somepassword", adminRole)
	createTestPost(t, db, author.ID, "First Post")
	createTestPost(t, db, author.ID, "Second Post")

	rec := serveWithSession(sm, h.Index, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	first := strings.Index(body, "First Post")
	second := strings.Index(body, "Second Post")
	if first < 0 || second < 0 {
		t.Fatalf("posts missing from listing: %q", body)
	}
	if second > first {
		t.Error("posts not listed newest first")
	}
	if !strings.Contains(body, "Test User") {
		t.Error("author name missing from listing")
	}
}

func TestShowPost(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewFrontendHandler(db, testRenderer(t, sm))

	author := createTestUser(t, db, "author@example.com", "somepassword", adminRole)
	post := createTestPost(t, db, author.ID, "Visible Post")

	t.Run("existing post renders", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/post/1", nil), map[string]string{"id": "1"})
		rec := serveWithSession(sm, h.ShowPost, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), post.Title) {
			t.Error("post title missing from page")
		}
	})

	t.Run("missing post is 404", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/post/999", nil), map[string]string{"id": "999"})
		rec := serveWithSession(sm, h.ShowPost, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/post/abc", nil), map[string]string{"id": "abc"})
		rec := serveWithSession(sm, h.ShowPost, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestAddComment(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewFrontendHandler(db, testRenderer(t, sm))

	author := createTestUser(t, db, "author@example.com", "somepassword", adminRole)
	commenter := createTestUser(t, db, "reader@example.com", "somepassword", memberRole)
	post := createTestPost(t, db, author.ID, "Commented Post")

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		req := formRequest("/post/1", url.Values{"body": {"hello"}})
		req = withURLParams(req, map[string]string{"id": "1"})
		rec := serveWithSession(sm, h.AddComment, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != RouteLogin {
			t.Errorf("Location = %q, want %q", loc, RouteLogin)
		}
	})

	t.Run("authenticated comment is stored", func(t *testing.T) {
		req := formRequest("/post/1", url.Values{"body": {"great read"}})
		req = withURLParams(req, map[string]string{"id": "1"})
		req = withUser(req, commenter)
		rec := serveWithSession(sm, h.AddComment, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}

		comments, err := h.queries.ListCommentsForPost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("ListCommentsForPost: %v", err)
		}
		if len(comments) != 1 {
			t.Fatalf("comment count = %d, want 1", len(comments))
		}
		if comments[0].Body != "great read" {
			t.Errorf("body = %q, want %q", comments[0].Body, "great read")
		}
		if comments[0].AuthorName != "Test User" {
			t.Errorf("author name = %q, want %q", comments[0].AuthorName, "Test User")
		}
	})

	t.Run("empty comment is rejected", func(t *testing.T) {
		req := formRequest("/post/1", url.Values{"body": {"   "}})
		req = withURLParams(req, map[string]string{"id": "1"})
		req = withUser(req, commenter)
		rec := serveWithSession(sm, h.AddComment, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}

		count, err := h.queries.CountCommentsForPost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("CountCommentsForPost: %v", err)
		}
		if count != 1 {
			t.Errorf("comment count = %d, want 1 (empty comment stored)", count)
		}
	})

	t.Run("script tags are stripped", func(t *testing.T) {
		req := formRequest("/post/1", url.Values{"body": {"<script>alert(1)</script>nice"}})
		req = withURLParams(req, map[string]string{"id": "1"})
		req = withUser(req, commenter)
		serveWithSession(sm, h.AddComment, req)

		comments, err := h.queries.ListCommentsForPost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("ListCommentsForPost: %v", err)
		}
		last := comments[len(comments)-1]
		if strings.Contains(last.Body, "<script>") {
			t.Errorf("script tag survived sanitization: %q", last.Body)
		}
	})
}

func TestDeleteComment(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewFrontendHandler(db, testRenderer(t, sm))

	admin := createTestUser(t, db, "admin@example.com", "somepassword", adminRole)
	owner := createTestUser(t, db, "owner@example.com", "somepassword", memberRole)
	other := createTestUser(t, db, "other@example.com", "somepassword", memberRole)
	post := createTestPost(t, db, admin.ID, "Post With Comments")

	addComment := func(t *testing.T, userID int64) int64 {
		t.Helper()
		req := formRequest("/post/1", url.Values{"body": {"a comment"}})
		req = withURLParams(req, map[string]string{"id": "1"})
		req = withUser(req, mustGetUser(t, h, userID))
		serveWithSession(sm, h.AddComment, req)

		comments, err := h.queries.ListCommentsForPost(context.Background(), post.ID)
		if err != nil {
			t.Fatalf("ListCommentsForPost: %v", err)
		}
		return comments[len(comments)-1].ID
	}

	deleteReq := func(commentID int64, asUser int64) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/delete-comment/0/1", nil)
		req = withURLParams(req, map[string]string{
			"id":     itoa(commentID),
			"postId": "1",
		})
		return withUser(req, mustGetUser(t, h, asUser))
	}

	t.Run("stranger is forbidden", func(t *testing.T) {
		commentID := addComment(t, owner.ID)
		rec := serveWithSession(sm, h.DeleteComment, deleteReq(commentID, other.ID))

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("owner can delete", func(t *testing.T) {
		commentID := addComment(t, owner.ID)
		rec := serveWithSession(sm, h.DeleteComment, deleteReq(commentID, owner.ID))

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
	})

	t.Run("admin can delete anyone's comment", func(t *testing.T) {
		commentID := addComment(t, owner.ID)
		rec := serveWithSession(sm, h.DeleteComment, deleteReq(commentID, admin.ID))

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
	})
}

func TestAbout(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewFrontendHandler(db, testRenderer(t, sm))

	rec := serveWithSession(sm, h.About, httptest.NewRequest(http.MethodGet, RouteAbout, nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
