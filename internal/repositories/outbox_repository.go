package repositories

import (
	"database/sql"
	"time"

	"eventease-backend/internal/domain/models"
)

// OutboxRepository stores booking events awaiting notification dispatch.
// Rows are inserted inside the booking transaction; the dispatcher drains
// them after commit, so a crash between the two leaves a pending row rather
// than a lost notification.
type OutboxRepository struct {
	DB *sql.DB
}

func (r OutboxRepository) Insert(q DBTX, evt *models.BookingEvent) error {
	res, err := q.Exec(`
		INSERT INTO booking_events (
			booking_id, event_type, recipient_id, title, message, priority, action_link
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, evt.BookingID, evt.EventType, evt.RecipientID, evt.Title, evt.Message, evt.Priority, evt.ActionLink)
	if err != nil {
		return err
	}
	evt.ID, err = res.LastInsertId()
	return err
}

// FetchPending returns undispatched events oldest first.
func (r OutboxRepository) FetchPending(limit int) ([]models.BookingEvent, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := r.DB.Query(`
		SELECT id, booking_id, event_type, recipient_id, title, message, priority, action_link, created_at
		FROM booking_events
		WHERE dispatched_at IS NULL
		ORDER BY id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.BookingEvent{}
	for rows.Next() {
		var e models.BookingEvent
		if err := rows.Scan(
			&e.ID, &e.BookingID, &e.EventType, &e.RecipientID,
			&e.Title, &e.Message, &e.Priority, &e.ActionLink, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r OutboxRepository) MarkDispatched(id int64) error {
	_, err := r.DB.Exec(`
		UPDATE booking_events SET dispatched_at=? WHERE id=? AND dispatched_at IS NULL
	`, time.Now(), id)
	return err
}
