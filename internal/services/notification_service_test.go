package services

import (
	"errors"
	"testing"

	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/repositories"
)

func TestDispatchPendingDeliversAndMarks(t *testing.T) {
	saved := []models.Notification{}
	marked := []int64{}

	d := NotificationDispatcher{
		FetchPending: func(int) ([]models.BookingEvent, error) {
			return []models.BookingEvent{
				{ID: 1, BookingID: 10, EventType: models.NotifyBookingRequest, RecipientID: 5,
					Title: "New Booking Request", Message: "You have a new booking request", Priority: models.PriorityHigh},
				{ID: 2, BookingID: 11, EventType: models.NotifyBookingConfirmed, RecipientID: 1,
					Title: "Booking Confirmed", Message: "Your booking has been confirmed", Priority: models.PriorityHigh},
			}, nil
		},
		SaveNotification: func(n *models.Notification) error {
			saved = append(saved, *n)
			return nil
		},
		MarkDispatched: func(id int64) error {
			marked = append(marked, id)
			return nil
		},
		FetchUser: func(id int64) (models.UserInfo, error) {
			return models.UserInfo{ID: id, Name: "Someone"}, nil
		},
	}

	if got := d.DispatchPending(); got != 2 {
		t.Fatalf("expected 2 dispatched, got %d", got)
	}
	if len(saved) != 2 || len(marked) != 2 {
		t.Fatalf("expected 2 saved and 2 marked, got %d/%d", len(saved), len(marked))
	}
	if saved[0].Related.Kind != models.RelatedBooking || saved[0].Related.ID != 10 {
		t.Fatalf("related ref not carried over: %+v", saved[0].Related)
	}
}

func TestDispatchPendingSkipsMissingRecipient(t *testing.T) {
	saved := 0
	marked := []int64{}

	d := NotificationDispatcher{
		FetchPending: func(int) ([]models.BookingEvent, error) {
			return []models.BookingEvent{
				{ID: 1, BookingID: 10, RecipientID: 404, EventType: models.NotifyBookingRequest},
			}, nil
		},
		SaveNotification: func(*models.Notification) error {
			saved++
			return nil
		},
		MarkDispatched: func(id int64) error {
			marked = append(marked, id)
			return nil
		},
		FetchUser: func(int64) (models.UserInfo, error) {
			return models.UserInfo{}, repositories.ErrUserNotFound
		},
	}

	if got := d.DispatchPending(); got != 0 {
		t.Fatalf("expected 0 dispatched, got %d", got)
	}
	if saved != 0 {
		t.Fatalf("no notification should be saved for a missing recipient")
	}
	// still marked so the poison event does not block the queue
	if len(marked) != 1 || marked[0] != 1 {
		t.Fatalf("event should be marked dispatched, got %v", marked)
	}
}

func TestDispatchPendingRetriesOnInsertFailure(t *testing.T) {
	marked := []int64{}

	d := NotificationDispatcher{
		FetchPending: func(int) ([]models.BookingEvent, error) {
			return []models.BookingEvent{
				{ID: 7, BookingID: 10, RecipientID: 5, EventType: models.NotifyBookingRequest},
			}, nil
		},
		SaveNotification: func(*models.Notification) error {
			return errors.New("insert failed")
		},
		MarkDispatched: func(id int64) error {
			marked = append(marked, id)
			return nil
		},
		FetchUser: func(id int64) (models.UserInfo, error) {
			return models.UserInfo{ID: id}, nil
		},
	}

	if got := d.DispatchPending(); got != 0 {
		t.Fatalf("expected 0 dispatched, got %d", got)
	}
	if len(marked) != 0 {
		t.Fatalf("failed event must stay pending for retry, got marked=%v", marked)
	}
}
