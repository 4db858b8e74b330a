// Copyright (c) 2025-2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
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
)

// FrontendHandler serves the public pages: post listing, post view with
// comments, and the about page.
type FrontendHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer) *FrontendHandler {
	return &FrontendHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
	}
}

// IndexData is the template payload for the post listing.
type IndexData struct {
	Posts []store.ListPostsRow
}

// Index lists all posts, newest first.
func (h *FrontendHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "site/index", render.TemplateData{
		Title: "Home",
		User:  middleware.GetUser(r),
		Data:  IndexData{Posts: posts},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "site/index")
	}
}

// PostData is the template payload for a single post view.
type PostData struct {
	Post       store.Post
	AuthorName string
	Comments   []store.ListCommentsForPostRow
	CanEdit    bool
}

// ShowPost renders a post with its comments. The comment form is shown to
// authenticated users by the template.
func (h *FrontendHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
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

	author, err := h.queries.GetUserByID(r.Context(), post.AuthorID)
	if err != nil {
		logAndInternalError(w, "failed to load post author", "error", err, "post_id", post.ID)
		return
	}

	comments, err := h.queries.ListCommentsForPost(r.Context(), post.ID)
	if err != nil {
		logAndInternalError(w, "failed to list comments", "error", err, "post_id", post.ID)
		return
	}

	user := middleware.GetUser(r)

	if err := h.renderer.Render(w, r, "site/post", render.TemplateData{
		Title: post.Title,
		User:  user,
		Data: PostData{
			Post:       post,
			AuthorName: author.Name,
			Comments:   comments,
			CanEdit:    user != nil && user.IsAdmin(),
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "site/post")
	}
}

// AddComment handles a comment submission on a post. Requires an
// authenticated user; the route is wrapped in RequireAuth.
func (h *FrontendHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		flashAndRedirect(w, r, h.renderer, RouteLogin, FlashLoginToComment, "error")
		return
	}

	postURL := fmt.Sprintf("/post/%d", id)
	if !parseFormOrRedirect(w, r, h.renderer, postURL) {
		return
	}

	body := strings.TrimSpace(markdown.SanitizeText(r.FormValue("body")))
	if body == "" {
		flashError(w, r, h.renderer, postURL, FlashEmptyComment)
		return
	}

	// Confirm the post still exists before attaching a comment
	if _, err := h.queries.GetPostByID(r.Context(), id); err != nil {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}

	comment, err := h.queries.CreateComment(r.Context(), store.CreateCommentParams{
		PostID:    id,
		UserID:    user.ID,
		Body:      body,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logAndInternalError(w, "failed to create comment", "error", err, "post_id", id)
		return
	}

	slog.Info("comment added", "comment_id", comment.ID, "post_id", id, "user_id", user.ID)
	_ = h.eventService.LogCommentEvent(r.Context(), model.EventLevelInfo, "Comment added", &user.ID, middleware.GetClientIP(r), map[string]any{"comment_id": comment.ID, "post_id": id})

	http.Redirect(w, r, postURL, http.StatusSeeOther)
}

// DeleteComment removes a comment. Allowed for the comment's author or the
// admin; anyone else gets 403.
func (h *FrontendHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	postID, ok := parseIDParam(w, r, "postId")
	if !ok {
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		flashAndRedirect(w, r, h.renderer, RouteLogin, FlashLoginToComment, "error")
		return
	}

	comment, ok := requireEntityWithError(w, "comment", commentID, func(id int64) (store.Comment, error) {
		return h.queries.GetCommentByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if comment.UserID != user.ID && !user.IsAdmin() {
		slog.Warn("comment delete denied",
			"comment_id", comment.ID,
			"owner_id", comment.UserID,
			"user_id", user.ID,
			"remote_addr", r.RemoteAddr,
		)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.queries.DeleteComment(r.Context(), comment.ID); err != nil {
		logAndInternalError(w, "failed to delete comment", "error", err, "comment_id", comment.ID)
		return
	}

	slog.Info("comment deleted", "comment_id", comment.ID, "post_id", postID, "user_id", user.ID)
	_ = h.eventService.LogCommentEvent(r.Context(), model.EventLevelInfo, "Comment deleted", &user.ID, middleware.GetClientIP(r), map[string]any{"comment_id": comment.ID, "post_id": postID})

	http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
}

// About renders the static about page.
func (h *FrontendHandler) About(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "site/about", render.TemplateData{
		Title: "About Me",
		User:  middleware.GetUser(r),
	}); err != nil {
		logAndInternalError(w, "render error", "error", err, "template", "site/about")
	}
}
