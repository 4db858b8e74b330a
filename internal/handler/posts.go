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

	"github.com/inkwell-blog/inkwell/internal/markdown"
	"github.com/inkwell-blog/inkwell/internal/middleware"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/render"
	"github.com/inkwell-blog/inkwell/internal/service"
	"github.com/inkwell-blog/inkwell/internal/store"
	"github.com/inkwell-blog/inkwell/internal/util"
)

// PostHandler handles admin post authoring: create, edit, delete.
type PostHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(db *sql.DB, renderer *render.Renderer) *PostHandler {
	return &PostHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
	}
}

// PostFormData is the template payload for the post authoring form.
type PostFormData struct {
	Post    store.Post
	IsEdit  bool
	Action  string
	Heading string
}

// NewForm renders the empty post authoring form.
func (h *PostHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "site/post_form", render.TemplateData{
		Title: "New Post",
		User:  middleware.GetUser(r),
		Data: PostFormData{
			Action:  RouteNewPost,
			Heading: "New Post",
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "site/post_form")
	}
}

// Create handles the new post submission. A duplicate title is rejected
// before anything is written.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteNewPost) {
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	subtitle := strings.TrimSpace(r.FormValue("subtitle"))
	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	body := r.FormValue("body")

	if title == "" || body == "" {
		flashError(w, r, h.renderer, RouteNewPost, "Title and body are required")
		return
	}

	if _, err := h.queries.GetPostByTitle(r.Context(), title); err == nil {
		flashError(w, r, h.renderer, RouteNewPost, FlashDuplicateTitle)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logAndInternalError(w, "database error checking post title", "error", err)
		return
	}

	bodyHTML, err := markdown.Render(body)
	if err != nil {
		logAndInternalError(w, "markdown render error", "error", err)
		return
	}

	now := time.Now()
	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:     title,
		Slug:      util.Slugify(title),
		Subtitle:  subtitle,
		Body:      body,
		BodyHtml:  bodyHTML,
		ImageUrl:  imageURL,
		AuthorID:  user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		// Unique constraint race between the title check and the insert
		slog.Error("failed to create post", "error", err, "title", title)
		flashError(w, r, h.renderer, RouteNewPost, FlashDuplicateTitle)
		return
	}

	slog.Info("post created", "post_id", post.ID, "title", post.Title, "user_id", user.ID)
	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post created", &user.ID, middleware.GetClientIP(r), map[string]any{"post_id": post.ID, "title": post.Title})

	flashSuccess(w, r, h.renderer, fmt.Sprintf("/post/%d", post.ID), "Post published.")
}

// EditForm renders the authoring form pre-filled with an existing post.
func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	post, ok := requireEntityWithError(w, "post", id, func(id int64) (store.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.renderer.Render(w, r, "site/post_form", render.TemplateData{
		Title: "Edit Post",
		User:  middleware.GetUser(r),
		Data: PostFormData{
			Post:    post,
			IsEdit:  true,
			Action:  fmt.Sprintf("/edit-post/%d", post.ID),
			Heading: "Edit Post",
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "site/post_form")
	}
}

// Update handles the edit form submission. The author is never changed,
// regardless of who performs the edit.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	editURL := fmt.Sprintf("/edit-post/%d", id)
	if !parseFormOrRedirect(w, r, h.renderer, editURL) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	subtitle := strings.TrimSpace(r.FormValue("subtitle"))
	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	body := r.FormValue("body")

	if title == "" || body == "" {
		flashError(w, r, h.renderer, editURL, "Title and body are required")
		return
	}

	// Reject a title that belongs to a different post
	if existing, err := h.queries.GetPostByTitle(r.Context(), title); err == nil && existing.ID != id {
		flashError(w, r, h.renderer, editURL, FlashDuplicateTitle)
		return
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logAndInternalError(w, "database error checking post title", "error", err)
		return
	}

	bodyHTML, err := markdown.Render(body)
	if err != nil {
		logAndInternalError(w, "markdown render error", "error", err)
		return
	}

	post, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		Title:     title,
		Slug:      util.Slugify(title),
		Subtitle:  subtitle,
		Body:      body,
		BodyHtml:  bodyHTML,
		ImageUrl:  imageURL,
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "post not found", http.StatusNotFound)
			return
		}
		logAndInternalError(w, "failed to update post", "error", err, "post_id", id)
		return
	}

	userID := middleware.GetUserIDPtr(r)
	slog.Info("post updated", "post_id", post.ID, "title", post.Title)
	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post updated", userID, middleware.GetClientIP(r), map[string]any{"post_id": post.ID, "title": post.Title})

	flashSuccess(w, r, h.renderer, fmt.Sprintf("/post/%d", post.ID), "Post updated.")
}

// Delete removes a post. Its comments go with it via the foreign key
// cascade.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	post, ok := requireEntityWithError(w, "post", id, func(id int64) (store.Post, error) {
		return h.queries.GetPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), post.ID); err != nil {
		logAndInternalError(w, "failed to delete post", "error", err, "post_id", post.ID)
		return
	}

	userID := middleware.GetUserIDPtr(r)
	slog.Info("post deleted", "post_id", post.ID, "title", post.Title)
	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post deleted", userID, middleware.GetClientIP(r), map[string]any{"post_id": post.ID, "title": post.Title})

	flashAndRedirect(w, r, h.renderer, RouteRoot, "Post deleted.", "info")
}
