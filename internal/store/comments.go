package store

import (
	"context"
	"time"
)

const createComment = `
INSERT INTO comments (post_id, user_id, body, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, post_id, user_id, body, created_at
`

// CreateCommentParams holds the fields for CreateComment.
type CreateCommentParams struct {
	PostID    int64
	UserID    int64
	Body      string
	CreatedAt time.Time
}

// CreateComment inserts a new comment and returns the created row.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment,
		arg.PostID,
		arg.UserID,
		arg.Body,
		arg.CreatedAt,
	)
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt)
	return c, err
}

const getCommentByID = `
SELECT id, post_id, user_id, body, created_at
FROM comments WHERE id = ?
`

// GetCommentByID returns the comment with the given ID, or sql.ErrNoRows.
func (q *Queries) GetCommentByID(ctx context.Context, id int64) (Comment, error) {
	row := q.db.QueryRowContext(ctx, getCommentByID, id)
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Body, &c.CreatedAt)
	return c, err
}

const listCommentsForPost = `
SELECT c.id, c.post_id, c.user_id, c.body, c.created_at,
       u.name AS author_name, u.email AS author_email
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.post_id = ?
ORDER BY c.created_at ASC, c.id ASC
`

// ListCommentsForPostRow is a comment joined with its author.
type ListCommentsForPostRow struct {
	Comment
	AuthorName  string
	AuthorEmail string
}

// ListCommentsForPost returns a post's comments, oldest first, with authors.
func (q *Queries) ListCommentsForPost(ctx context.Context, postID int64) ([]ListCommentsForPostRow, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsForPost, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ListCommentsForPostRow
	for rows.Next() {
		var r ListCommentsForPostRow
		if err := rows.Scan(&r.ID, &r.PostID, &r.UserID, &r.Body, &r.CreatedAt, &r.AuthorName, &r.AuthorEmail); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const deleteComment = `
DELETE FROM comments WHERE id = ?
`

// DeleteComment removes a comment.
func (q *Queries) DeleteComment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteComment, id)
	return err
}

const countCommentsForPost = `
SELECT COUNT(*) FROM comments WHERE post_id = ?
`

// CountCommentsForPost returns the number of comments on a post.
func (q *Queries) CountCommentsForPost(ctx context.Context, postID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countCommentsForPost, postID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
