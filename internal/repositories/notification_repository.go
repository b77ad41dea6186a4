package repositories

import (
	"database/sql"
	"time"

	"eventease-backend/internal/domain/models"
)

type NotificationRepository struct {
	DB *sql.DB
}

func (r NotificationRepository) Insert(n *models.Notification) error {
	res, err := r.DB.Exec(`
		INSERT INTO notifications (
			recipient_id, type, title, message,
			related_kind, related_id, priority, action_link
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.RecipientID, n.Type, n.Title, n.Message,
		string(n.Related.Kind), n.Related.ID, n.Priority, n.ActionLink)
	if err != nil {
		return err
	}
	n.ID, err = res.LastInsertId()
	return err
}

// ListByRecipient returns one page of a user's notifications, newest first,
// plus the unpaged total and the unread count.
func (r NotificationRepository) ListByRecipient(recipientID int64, page, limit int) ([]models.Notification, int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total, unread int
	if err := r.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(is_read=0), 0) FROM notifications WHERE recipient_id=?
	`, recipientID).Scan(&total, &unread); err != nil {
		return nil, 0, 0, err
	}

	rows, err := r.DB.Query(`
		SELECT id, recipient_id, type, title, message,
		       related_kind, related_id, priority, action_link,
		       is_read, read_at, created_at
		FROM notifications
		WHERE recipient_id=?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, recipientID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	items := []models.Notification{}
	for rows.Next() {
		var (
			n      models.Notification
			kind   string
			readAt sql.NullTime
		)
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message,
			&kind, &n.Related.ID, &n.Priority, &n.ActionLink,
			&n.IsRead, &readAt, &n.CreatedAt,
		); err != nil {
			return nil, 0, 0, err
		}
		n.Related.Kind = models.RelatedKind(kind)
		if readAt.Valid {
			n.ReadAt = &readAt.Time
		}
		items = append(items, n)
	}
	return items, total, unread, rows.Err()
}

// MarkRead flags one notification owned by recipientID. Returns false when
// the id does not belong to them or does not exist.
func (r NotificationRepository) MarkRead(id, recipientID int64) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE notifications SET is_read=1, read_at=? WHERE id=? AND recipient_id=? AND is_read=0
	`, time.Now(), id, recipientID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return true, nil
	}

	// Distinguish "already read" from "not yours / missing".
	var n int
	if err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM notifications WHERE id=? AND recipient_id=?
	`, id, recipientID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r NotificationRepository) MarkAllRead(recipientID int64) (int64, error) {
	res, err := r.DB.Exec(`
		UPDATE notifications SET is_read=1, read_at=? WHERE recipient_id=? AND is_read=0
	`, time.Now(), recipientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
