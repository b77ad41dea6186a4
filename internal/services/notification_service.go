package services

import (
	"context"
	"fmt"
	"time"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/utils"
)

// NotificationService is the user-facing read/ack side of notifications.
type NotificationService struct {
	Repo      repositories.NotificationRepository
	RequestID string
}

func (s NotificationService) List(actor domain.Actor, page, limit int) ([]models.Notification, int, int, error) {
	items, total, unread, err := s.Repo.ListByRecipient(actor.UserID, page, limit)
	if err != nil {
		return nil, 0, 0, domain.InternalError{Msg: "Server error occurred while fetching notifications", Err: err}
	}
	return items, total, unread, nil
}

func (s NotificationService) MarkRead(actor domain.Actor, id int64) error {
	ok, err := s.Repo.MarkRead(id, actor.UserID)
	if err != nil {
		return domain.InternalError{Msg: "Server error occurred while updating notification", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Msg: "Notification not found"}
	}
	return nil
}

func (s NotificationService) MarkAllRead(actor domain.Actor) (int64, error) {
	n, err := s.Repo.MarkAllRead(actor.UserID)
	if err != nil {
		return 0, domain.InternalError{Msg: "Server error occurred while updating notifications", Err: err}
	}
	return n, nil
}

// NotificationDispatcher drains the booking event outbox into per-user
// notifications. It runs in its own goroutine; a failed event stays pending
// and is retried on the next tick.
type NotificationDispatcher struct {
	Outbox        repositories.OutboxRepository
	Notifications repositories.NotificationRepository
	Users         repositories.UserRepository
	Interval      time.Duration
	BatchSize     int

	// Test seams; nil means use the repositories above.
	FetchPending     func(int) ([]models.BookingEvent, error)
	SaveNotification func(*models.Notification) error
	MarkDispatched   func(int64) error
	FetchUser        func(int64) (models.UserInfo, error)
}

func (d NotificationDispatcher) fetchPending(limit int) ([]models.BookingEvent, error) {
	if d.FetchPending != nil {
		return d.FetchPending(limit)
	}
	return d.Outbox.FetchPending(limit)
}

func (d NotificationDispatcher) save(n *models.Notification) error {
	if d.SaveNotification != nil {
		return d.SaveNotification(n)
	}
	return d.Notifications.Insert(n)
}

func (d NotificationDispatcher) markDispatched(id int64) error {
	if d.MarkDispatched != nil {
		return d.MarkDispatched(id)
	}
	return d.Outbox.MarkDispatched(id)
}

func (d NotificationDispatcher) fetchUser(id int64) (models.UserInfo, error) {
	if d.FetchUser != nil {
		return d.FetchUser(id)
	}
	return d.Users.GetByID(id)
}

// Run blocks until ctx is cancelled. It drains once immediately so events
// left pending by a crash are delivered without waiting a full interval.
func (d NotificationDispatcher) Run(ctx context.Context) {
	interval := d.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	d.DispatchPending()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchPending()
		}
	}
}

// DispatchPending processes one batch. Events whose recipient no longer
// exists are marked dispatched and skipped; storage errors leave the event
// pending for retry. It never propagates an error to the caller.
func (d NotificationDispatcher) DispatchPending() int {
	batch := d.BatchSize
	if batch < 1 {
		batch = 50
	}

	events, err := d.fetchPending(batch)
	if err != nil {
		utils.LogEvent("", "dispatcher", "fetch_failed", err.Error())
		return 0
	}

	dispatched := 0
	for _, evt := range events {
		if _, err := d.fetchUser(evt.RecipientID); err == repositories.ErrUserNotFound {
			utils.LogEvent("", "dispatcher", "skip_missing_recipient",
				fmt.Sprintf("event_id=%d recipient_id=%d", evt.ID, evt.RecipientID))
			if err := d.markDispatched(evt.ID); err != nil {
				utils.LogEvent("", "dispatcher", "mark_failed", err.Error())
			}
			continue
		} else if err != nil {
			utils.LogEvent("", "dispatcher", "recipient_lookup_failed", err.Error())
			continue
		}

		notification := models.Notification{
			RecipientID: evt.RecipientID,
			Type:        evt.EventType,
			Title:       evt.Title,
			Message:     evt.Message,
			Related:     models.RelatedRef{Kind: models.RelatedBooking, ID: evt.BookingID},
			Priority:    evt.Priority,
			ActionLink:  evt.ActionLink,
		}
		if err := d.save(&notification); err != nil {
			utils.LogEvent("", "dispatcher", "insert_failed",
				fmt.Sprintf("event_id=%d: %v", evt.ID, err))
			continue
		}
		if err := d.markDispatched(evt.ID); err != nil {
			utils.LogEvent("", "dispatcher", "mark_failed",
				fmt.Sprintf("event_id=%d: %v", evt.ID, err))
			continue
		}
		dispatched++
	}
	return dispatched
}
