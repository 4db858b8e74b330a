package store

import (
	"context"
	"time"
)

const createPost = `
INSERT INTO posts (title, slug, subtitle, body, body_html, image_url, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, slug, subtitle, body, body_html, image_url, author_id, created_at, updated_at
`

// CreatePostParams holds the fields for CreatePost.
type CreatePostParams struct {
	Title     string
	Slug      string
	Subtitle  string
	Body      string
	BodyHtml  string
	ImageUrl  string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePost inserts a new post and returns the created row.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.Title,
		arg.Slug,
		arg.Subtitle,
		arg.Body,
		arg.BodyHtml,
		arg.ImageUrl,
		arg.AuthorID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Subtitle, &p.Body, &p.BodyHtml, &p.ImageUrl, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPostByID = `
SELECT id, title, slug, subtitle, body, body_html, image_url, author_id, created_at, updated_at
FROM posts WHERE id = ?
`

// GetPostByID returns the post with the given ID, or sql.ErrNoRows.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPostByID, id)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Subtitle, &p.Body, &p.BodyHtml, &p.ImageUrl, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPostByTitle = `
SELECT id, title, slug, subtitle, body, body_html, image_url, author_id, created_at, updated_at
FROM posts WHERE title = ?
`

// GetPostByTitle returns the post with the given title, or sql.ErrNoRows.
// Used for duplicate title detection before insert.
func (q *Queries) GetPostByTitle(ctx context.Context, title string) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPostByTitle, title)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Subtitle, &p.Body, &p.BodyHtml, &p.ImageUrl, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPostBySlug = `
SELECT id, title, slug, subtitle, body, body_html, image_url, author_id, created_at, updated_at
FROM posts WHERE slug = ?
`

// GetPostBySlug returns the post with the given slug, or sql.ErrNoRows.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	row := q.db.QueryRowContext(ctx, getPostBySlug, slug)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Subtitle, &p.Body, &p.BodyHtml, &p.ImageUrl, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listPosts = `
SELECT p.id, p.title, p.slug, p.subtitle, p.body, p.body_html, p.image_url, p.author_id, p.created_at, p.updated_at,
       u.name AS author_name
FROM posts p
JOIN users u ON u.id = p.author_id
ORDER BY p.created_at DESC, p.id DESC
`

// ListPostsRow is a post joined with its author's display name.
type ListPostsRow struct {
	Post
	AuthorName string
}

// ListPosts returns all posts, newest first, with author names.
func (q *Queries) ListPosts(ctx context.Context) ([]ListPostsRow, error) {
	rows, err := q.db.QueryContext(ctx, listPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListPostsRow
	for rows.Next() {
		var r ListPostsRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Slug, &r.Subtitle, &r.Body, &r.BodyHtml, &r.ImageUrl, &r.AuthorID, &r.CreatedAt, &r.UpdatedAt, &r.AuthorName); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const updatePost = `
UPDATE posts
SET title = ?, slug = ?, subtitle = ?, body = ?, body_html = ?, image_url = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, slug, subtitle, body, body_html, image_url, author_id, created_at, updated_at
`

// UpdatePostParams holds the fields for UpdatePost. The author is never
// mutated by an edit.
type UpdatePostParams struct {
	Title     string
	Slug      string
	Subtitle  string
	Body      string
	BodyHtml  string
	ImageUrl  string
	UpdatedAt time.Time
	ID        int64
}

// UpdatePost overwrites a post's editable fields and returns the updated
// row, or sql.ErrNoRows if the post does not exist.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, updatePost,
		arg.Title,
		arg.Slug,
		arg.Subtitle,
		arg.Body,
		arg.BodyHtml,
		arg.ImageUrl,
		arg.UpdatedAt,
		arg.ID,
	)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Subtitle, &p.Body, &p.BodyHtml, &p.ImageUrl, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const deletePost = `
DELETE FROM posts WHERE id = ?
`

// DeletePost removes a post. Comments cascade via the foreign key.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePost, id)
	return err
}

const countPosts = `
SELECT COUNT(*) FROM posts
`

// CountPosts returns the total number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPosts)
	var count int64
	err := row.Scan(&count)
	return count, err
}
