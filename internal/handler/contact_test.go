// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/inkwell-blog/inkwell/internal/store"
)

// stubMailer records sent messages and optionally fails.
type stubMailer struct {
	sent []store.ContactMessage
	err  error
}

func (s *stubMailer) SendContactMessage(_ context.Context, msg store.ContactMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func contactForm() url.Values {
	return url.Values{
		"name":    {"John"},
		"email":   {"john@example.com"},
		"phone":   {"555-0100"},
		"message": {"Hello there"},
	}
}

func TestContactSubmit(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	mailer := &stubMailer{}
	h := NewContactHandler(db, testRenderer(t, sm), mailer)

	req := formRequest(RouteContact, contactForm())
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0")
	rec := serveWithSession(sm, h.Submit, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != RouteContact {
		t.Errorf("Location = %q, want %q", loc, RouteContact)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("mails sent = %d, want 1", len(mailer.sent))
	}
	sent := mailer.sent[0]
	if sent.Reference == "" {
		t.Error("sent message has no reference")
	}

	messages, err := h.queries.ListContactMessages(context.Background(), store.ListContactMessagesParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListContactMessages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("stored messages = %d, want 1", len(messages))
	}
	msg := messages[0]
	if msg.Reference != sent.Reference {
		t.Errorf("stored reference %q != sent reference %q", msg.Reference, sent.Reference)
	}
	if msg.UserAgent == "" {
		t.Error("user agent not recorded")
	}
	if msg.IsRead {
		t.Error("new message marked read")
	}
}

func TestContactSubmit_MailFailure(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	mailer := &stubMailer{err: errors.New("smtp down")}
	h := NewContactHandler(db, testRenderer(t, sm), mailer)

	rec := serveWithSession(sm, h.Submit, formRequest(RouteContact, contactForm()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	// The submission is persisted even when delivery fails
	count, err := h.queries.CountContactMessages(context.Background())
	if err != nil {
		t.Fatalf("CountContactMessages: %v", err)
	}
	if count != 1 {
		t.Errorf("stored messages = %d, want 1", count)
	}
}

func TestContactSubmit_MissingFields(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewContactHandler(db, testRenderer(t, sm), &stubMailer{})

	rec := serveWithSession(sm, h.Submit, formRequest(RouteContact, url.Values{
		"name": {"John"},
	}))

	if loc := rec.Header().Get("Location"); loc != RouteContact {
		t.Errorf("Location = %q, want %q", loc, RouteContact)
	}
	if count, _ := h.queries.CountContactMessages(context.Background()); count != 0 {
		t.Errorf("stored messages = %d, want 0", count)
	}
}

func TestContactSubmit_NilMailer(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewContactHandler(db, testRenderer(t, sm), nil)

	rec := serveWithSession(sm, h.Submit, formRequest(RouteContact, contactForm()))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if count, _ := h.queries.CountContactMessages(context.Background()); count != 1 {
		t.Errorf("stored messages = %d, want 1", count)
	}
}

func TestMarkRead(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewContactHandler(db, testRenderer(t, sm), &stubMailer{})

	serveWithSession(sm, h.Submit, formRequest(RouteContact, contactForm()))

	req := httptest.NewRequest(http.MethodPost, "/admin/messages/1/read", nil)
	req = withURLParams(req, map[string]string{"id": "1"})
	rec := serveWithSession(sm, h.MarkRead, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	msg, err := h.queries.GetContactMessageByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetContactMessageByID: %v", err)
	}
	if !msg.IsRead {
		t.Error("message not marked read")
	}

	unread, err := h.queries.CountUnreadContactMessages(context.Background())
	if err != nil {
		t.Fatalf("CountUnreadContactMessages: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread = %d, want 0", unread)
	}
}

func TestMessages_List(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()
	h := NewContactHandler(db, testRenderer(t, sm), &stubMailer{})

	serveWithSession(sm, h.Submit, formRequest(RouteContact, contactForm()))

	admin := createTestUser(t, db, "admin@example.com", "somepassword", adminRole)
	req := withUser(httptest.NewRequest(http.MethodGet, RouteAdminMessages, nil), admin)
	rec := serveWithSession(sm, h.Messages, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty response body")
	}
}
