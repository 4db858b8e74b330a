// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/inkwell-blog/inkwell/internal/markdown"
	"github.com/inkwell-blog/inkwell/internal/middleware"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/render"
	"github.com/inkwell-blog/inkwell/internal/service"
	"github.com/inkwell-blog/inkwell/internal/store"
)

// MailSender delivers a persisted contact message by email.
type MailSender interface {
	SendContactMessage(ctx context.Context, msg store.ContactMessage) error
}

// ContactHandler handles the contact form and the admin review pages for
// submitted messages.
type ContactHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
	mailer       MailSender
}

// NewContactHandler creates a new ContactHandler. The mailer may be nil
// when SMTP is not configured; submissions are then only persisted.
func NewContactHandler(db *sql.DB, renderer *render.Renderer, mailer MailSender) *ContactHandler {
	return &ContactHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
		mailer:       mailer,
	}
}

// Form renders the contact page.
func (h *ContactHandler) Form(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "site/contact", render.TemplateData{
		Title: "Contact",
		User:  middleware.GetUser(r),
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "site/contact")
	}
}

// Submit handles a contact form submission: persist first, then relay by
// email. A mail failure is reported but the submission is already saved.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	name := strings.TrimSpace(markdown.SanitizeText(r.FormValue("name")))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	message := strings.TrimSpace(markdown.SanitizeText(r.FormValue("message")))

	if name == "" || email == "" || message == "" {
		flashError(w, r, h.renderer, RouteContact, "Name, email and message are required")
		return
	}
	if !strings.Contains(email, "@") {
		flashError(w, r, h.renderer, RouteContact, "Please enter a valid email address")
		return
	}

	ua := useragent.Parse(r.UserAgent())
	clientIP := middleware.GetClientIP(r)

	msg, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Reference: uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		IpAddress: clientIP,
		UserAgent: strings.TrimSpace(fmt.Sprintf("%s %s", ua.Name, ua.OS)),
		CreatedAt: time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "failed to save contact message", "error", err)
		return
	}

	_ = h.eventService.LogContactEvent(r.Context(), model.EventLevelInfo, "Contact message received", middleware.GetUserIDPtr(r), clientIP, map[string]any{"reference": msg.Reference})

	if h.mailer != nil {
		if err := h.mailer.SendContactMessage(r.Context(), msg); err != nil {
			slog.Error("failed to send contact mail", "error", err, "reference", msg.Reference)
			_ = h.eventService.LogContactEvent(r.Context(), model.EventLevelError, "Contact mail delivery failed", nil, clientIP, map[string]any{"reference": msg.Reference, "error": err.Error()})
			flashError(w, r, h.renderer, RouteContact, FlashContactFailed)
			return
		}
	}

	flashSuccess(w, r, h.renderer, RouteContact, FlashContactSent)
}

// MessagesData is the template payload for the admin message review page.
type MessagesData struct {
	Messages []store.ContactMessage
	Unread   int64
	Total    int64
	Page     int
	PerPage  int
}

// messagesPerPage is the admin review page size.
const messagesPerPage = 25

// Messages lists contact submissions for the admin, newest first.
func (h *ContactHandler) Messages(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}

	messages, err := h.queries.ListContactMessages(r.Context(), store.ListContactMessagesParams{
		Limit:  messagesPerPage,
		Offset: int64((page - 1) * messagesPerPage),
	})
	if err != nil {
		logAndInternalError(w, "failed to list contact messages", "error", err)
		return
	}

	unread, err := h.queries.CountUnreadContactMessages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count unread messages", "error", err)
		return
	}

	total, err := h.queries.CountContactMessages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count messages", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "site/messages", render.TemplateData{
		Title: "Messages",
		User:  middleware.GetUser(r),
		Data: MessagesData{
			Messages: messages,
			Unread:   unread,
			Total:    total,
			Page:     page,
			PerPage:  messagesPerPage,
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "site/messages")
	}
}

// MarkRead marks a contact submission as read.
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if _, ok := requireEntityWithError(w, "message", id, func(id int64) (store.ContactMessage, error) {
		return h.queries.GetContactMessageByID(r.Context(), id)
	}); !ok {
		return
	}

	if err := h.queries.MarkContactMessageRead(r.Context(), id); err != nil {
		logAndInternalError(w, "failed to mark message read", "error", err, "message_id", id)
		return
	}

	http.Redirect(w, r, RouteAdminMessages, http.StatusSeeOther)
}
