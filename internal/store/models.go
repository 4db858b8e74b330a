package store

import (
	"database/sql"
	"time"
)

// User is a registered account. PasswordHash is never exposed in JSON.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	Name         string       `json:"name"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}

// IsAdmin returns true if the user has the admin capability.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// Post is a blog post. Body holds the authored Markdown, BodyHtml the
// sanitized rendering served to readers.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Subtitle  string    `json:"subtitle"`
	Body      string    `json:"body"`
	BodyHtml  string    `json:"body_html"`
	ImageUrl  string    `json:"image_url"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a reader comment on a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage is a persisted contact form submission.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	IpAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is an audit log entry.
type Event struct {
	ID        int64         `json:"id"`
	Level     string        `json:"level"`
	Category  string        `json:"category"`
	Message   string        `json:"message"`
	UserID    sql.NullInt64 `json:"user_id,omitempty"`
	IpAddress string        `json:"ip_address"`
	Metadata  string        `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}
