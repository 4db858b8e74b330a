package store

import (
	"context"
	"database/sql"
	"time"
)

const createEvent = `
INSERT INTO events (level, category, message, user_id, ip_address, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, level, category, message, user_id, ip_address, metadata, created_at
`

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IpAddress string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts an audit log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Level,
		arg.Category,
		arg.Message,
		arg.UserID,
		arg.IpAddress,
		arg.Metadata,
		arg.CreatedAt,
	)
	var e Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.IpAddress, &e.Metadata, &e.CreatedAt)
	return e, err
}

const listEvents = `
SELECT id, level, category, message, user_id, ip_address, metadata, created_at
FROM events
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

// ListEventsParams holds pagination for ListEvents.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

// ListEvents returns audit log entries, newest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.IpAddress, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const countEvents = `
SELECT COUNT(*) FROM events
`

// CountEvents returns the total number of audit log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEvents)
	var count int64
	err := row.Scan(&count)
	return count, err
}
