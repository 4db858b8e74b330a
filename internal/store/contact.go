package store

import (
	"context"
	"time"
)

const createContactMessage = `
INSERT INTO contact_messages (reference, name, email, phone, message, ip_address, user_agent, is_read, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)
RETURNING id, reference, name, email, phone, message, ip_address, user_agent, is_read, created_at
`

// CreateContactMessageParams holds the fields for CreateContactMessage.
type CreateContactMessageParams struct {
	Reference string
	Name      string
	Email     string
	Phone     string
	Message   string
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}

// CreateContactMessage persists a contact form submission.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, createContactMessage,
		arg.Reference,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Message,
		arg.IpAddress,
		arg.UserAgent,
		arg.CreatedAt,
	)
	var m ContactMessage
	err := row.Scan(&m.ID, &m.Reference, &m.Name, &m.Email, &m.Phone, &m.Message, &m.IpAddress, &m.UserAgent, &m.IsRead, &m.CreatedAt)
	return m, err
}

const getContactMessageByID = `
SELECT id, reference, name, email, phone, message, ip_address, user_agent, is_read, created_at
FROM contact_messages WHERE id = ?
`

// GetContactMessageByID returns a contact message, or sql.ErrNoRows.
func (q *Queries) GetContactMessageByID(ctx context.Context, id int64) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, getContactMessageByID, id)
	var m ContactMessage
	err := row.Scan(&m.ID, &m.Reference, &m.Name, &m.Email, &m.Phone, &m.Message, &m.IpAddress, &m.UserAgent, &m.IsRead, &m.CreatedAt)
	return m, err
}

const listContactMessages = `
SELECT id, reference, name, email, phone, message, ip_address, user_agent, is_read, created_at
FROM contact_messages
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

// ListContactMessagesParams holds pagination for ListContactMessages.
type ListContactMessagesParams struct {
	Limit  int64
	Offset int64
}

// ListContactMessages returns contact messages, newest first.
func (q *Queries) ListContactMessages(ctx context.Context, arg ListContactMessagesParams) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, listContactMessages, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ContactMessage
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Reference, &m.Name, &m.Email, &m.Phone, &m.Message, &m.IpAddress, &m.UserAgent, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const markContactMessageRead = `
UPDATE contact_messages SET is_read = 1 WHERE id = ?
`

// MarkContactMessageRead flags a contact message as reviewed.
func (q *Queries) MarkContactMessageRead(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markContactMessageRead, id)
	return err
}

const countUnreadContactMessages = `
SELECT COUNT(*) FROM contact_messages WHERE is_read = 0
`

// CountUnreadContactMessages returns the number of unreviewed submissions.
func (q *Queries) CountUnreadContactMessages(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUnreadContactMessages)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countContactMessages = `
SELECT COUNT(*) FROM contact_messages
`

// CountContactMessages returns the total number of submissions.
func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countContactMessages)
	var count int64
	err := row.Scan(&count)
	return count, err
}
