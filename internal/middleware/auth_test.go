// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/store"
)

func requestWithUser(user store.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), ContextKeyUser, user)
	return req.WithContext(ctx)
}

func TestGetUser(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user := GetUser(req); user != nil {
			t.Errorf("GetUser() = %v, want nil", user)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := requestWithUser(store.User{
			ID:    123,
			Email: "test@example.com",
			Role:  model.RoleAdmin,
			Name:  "Test User",
		})

		user := GetUser(req)
		if user == nil {
			t.Fatal("GetUser() = nil, want user")
		}
		if user.ID != 123 {
			t.Errorf("GetUser().ID = %d, want 123", user.ID)
		}
		if user.Email != "test@example.com" {
			t.Errorf("GetUser().Email = %q, want %q", user.Email, "test@example.com")
		}
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if id := GetUserID(req); id != 0 {
			t.Errorf("GetUserID() = %d, want 0", id)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := requestWithUser(store.User{ID: 456})
		if id := GetUserID(req); id != 456 {
			t.Errorf("GetUserID() = %d, want 456", id)
		}
	})
}

func TestGetUserIDPtr(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if ptr := GetUserIDPtr(req); ptr != nil {
			t.Errorf("GetUserIDPtr() = %v, want nil", ptr)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := requestWithUser(store.User{ID: 789})
		ptr := GetUserIDPtr(req)
		if ptr == nil {
			t.Fatal("GetUserIDPtr() = nil, want pointer")
		}
		if *ptr != 789 {
			t.Errorf("*GetUserIDPtr() = %d, want 789", *ptr)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAdmin()(next)

	t.Run("anonymous redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("Location = %q, want /login", loc)
		}
	})

	t.Run("member gets forbidden", func(t *testing.T) {
		req := requestWithUser(store.User{ID: 2, Role: model.RoleMember})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin passes through", func(t *testing.T) {
		req := requestWithUser(store.User{ID: 1, Role: model.RoleAdmin})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:   "remote addr fallback",
			remote: "192.0.2.10:41234",
			want:   "192.0.2.10:41234",
		},
		{
			name:    "x-real-ip wins",
			headers: map[string]string{"X-Real-IP": "203.0.113.5"},
			remote:  "192.0.2.10:41234",
			want:    "203.0.113.5",
		},
		{
			name:    "first forwarded-for entry",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.1"},
			remote:  "192.0.2.10:41234",
			want:    "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
