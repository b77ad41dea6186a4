package services

import (
	"testing"
	"time"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var bookingTestColumns = []string{
	"id", "event_id", "vendor_id", "user_id", "service_id", "booking_date",
	"start_time", "end_time", "status", "requirements", "price",
	"payment_status", "payment_method", "payment_transaction_id",
	"payment_paid_amount", "payment_paid_at",
	"notes", "cancellation_reason", "cancelled_by", "cancelled_at",
	"created_at", "updated_at",
}

func bookingRow(id int64, status string, date time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(bookingTestColumns).AddRow(
		id, int64(2), int64(3), int64(1), int64(4), date,
		"10:00", "12:00", status, "", 1500.0,
		models.PaymentPending, "none", "",
		0.0, nil,
		"", "", models.CancelledByNone, nil,
		time.Now(), time.Now(),
	)
}

func paidBookingRow(id int64, date time.Time, paidAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(bookingTestColumns).AddRow(
		id, int64(2), int64(3), int64(1), int64(4), date,
		"10:00", "12:00", models.BookingConfirmed, "", 1500.0,
		models.PaymentPartial, "card", "tx-1",
		500.0, paidAt,
		"", "", models.CancelledByNone, nil,
		time.Now(), time.Now(),
	)
}

func testBookingService(db sqlmockDB) BookingService {
	return BookingService{
		DB:           db.DB,
		Bookings:     repositories.BookingRepository{DB: db.DB},
		Availability: repositories.AvailabilityRepository{DB: db.DB},
		Outbox:       repositories.OutboxRepository{DB: db.DB},
		FetchEvent: func(int64) (models.EventInfo, error) {
			return models.EventInfo{ID: 2, OwnerID: 1, Name: "Wedding"}, nil
		},
		FetchVendor: func(int64) (models.VendorInfo, error) {
			return models.VendorInfo{ID: 3, OwnerUserID: 5, BusinessName: "Catering Co", ServiceIDs: []int64{4}}, nil
		},
	}
}

func TestUpdateStatusConfirmReservesSlot(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()
	mock.MatchExpectationsInOrder(false)

	date := time.Now().Add(72 * time.Hour)
	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(bookingRow(10, models.BookingPending, date))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE availability_slots").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM vendor_availability").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT COUNT(.+)FROM availability_slots").
		WillReturnRows(sqlmock.NewRows([]string{"total", "booked"}).AddRow(2, 1))
	mock.ExpectExec("UPDATE vendor_availability SET is_fully_booked").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_events").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(bookingRow(10, models.BookingConfirmed, date))

	svc := testBookingService(db)
	actor := domain.Actor{UserID: 5, Role: domain.RoleVendor}

	booking, err := svc.UpdateStatus(actor, 10, models.BookingConfirmed, "")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if booking.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed booking, got %s", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStatusConfirmConflictWhenSlotTaken(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()
	mock.MatchExpectationsInOrder(false)

	date := time.Now().Add(72 * time.Hour)
	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(bookingRow(10, models.BookingPending, date))

	mock.ExpectBegin()
	// conditional update loses: slot exists but is already held
	mock.ExpectExec("UPDATE availability_slots").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM vendor_availability").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT COUNT(.+)FROM availability_slots").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	svc := testBookingService(db)
	actor := domain.Actor{UserID: 5, Role: domain.RoleVendor}

	_, err := svc.UpdateStatus(actor, 10, models.BookingConfirmed, "")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "The requested time slot is not available" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db, _ := newSQLMock(t)
	defer db.DB.Close()

	svc := testBookingService(db)
	_, err := svc.UpdateStatus(domain.Actor{UserID: 5, Role: domain.RoleVendor}, 10, "archived", "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Status must be one of: confirmed, rejected, cancelled, completed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCancelBookingTwiceIsConflict(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()

	date := time.Now().Add(72 * time.Hour)
	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(sqlmock.NewRows(bookingTestColumns).AddRow(
			10, int64(2), int64(3), int64(1), int64(4), date,
			"10:00", "12:00", models.BookingCancelled, "", 1500.0,
			models.PaymentPending, "none", "",
			0.0, nil,
			"", "Changed plans", models.CancelledByUser, time.Now(),
			time.Now(), time.Now(),
		))

	svc := testBookingService(db)
	_, err := svc.CancelBooking(domain.Actor{UserID: 1, Role: domain.RoleUser}, 10, "")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Booking is already cancelled" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCancelConfirmedBookingReleasesSlot(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()
	mock.MatchExpectationsInOrder(false)

	date := time.Now().Add(72 * time.Hour)
	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(bookingRow(10, models.BookingConfirmed, date))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE availability_slots").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vendor_availability SET is_fully_booked").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_events").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(bookingRow(10, models.BookingCancelled, date))

	svc := testBookingService(db)
	booking, err := svc.CancelBooking(domain.Actor{UserID: 1, Role: domain.RoleUser}, 10, "Change of plans")
	if err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if booking.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled booking, got %s", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePaymentStatusSetsPaidAtOnFirstPayment(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()
	mock.MatchExpectationsInOrder(false)

	date := time.Now().Add(72 * time.Hour)
	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(bookingRow(10, models.BookingConfirmed, date))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET payment_status=(.+)payment_paid_at").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_events").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(paidBookingRow(10, date, time.Now()))

	svc := testBookingService(db)
	method := "card"
	amount := 500.0
	_, err := svc.UpdatePaymentStatus(domain.Actor{UserID: 5, Role: domain.RoleVendor}, 10,
		models.PaymentPartial, &PaymentDetailsInput{Method: &method, PaidAmount: &amount})
	if err != nil {
		t.Fatalf("UpdatePaymentStatus returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePaymentStatusDoesNotRewritePaidAt(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()
	mock.MatchExpectationsInOrder(false)

	date := time.Now().Add(72 * time.Hour)
	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(paidBookingRow(10, date, time.Now().Add(-time.Hour)))

	mock.ExpectBegin()
	// no paid_at column in the update once it has been written
	mock.ExpectExec(`UPDATE bookings SET payment_status=\? WHERE id=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_events").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT(.+)FROM bookings WHERE id").
		WillReturnRows(paidBookingRow(10, date, time.Now().Add(-time.Hour)))

	svc := testBookingService(db)
	_, err := svc.UpdatePaymentStatus(domain.Actor{UserID: 5, Role: domain.RoleVendor}, 10,
		models.PaymentPaid, nil)
	if err != nil {
		t.Fatalf("UpdatePaymentStatus returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingAvailabilityMessages(t *testing.T) {
	date := time.Now().Add(72 * time.Hour)
	input := CreateBookingInput{
		EventID:     2,
		VendorID:    3,
		ServiceID:   4,
		BookingDate: date,
		TimeSlot:    models.TimeSlot{StartTime: "10:00", EndTime: "12:00"},
		Price:       1500,
	}
	actor := domain.Actor{UserID: 1, Role: domain.RoleUser}
	entryCols := []string{"id", "vendor_id", "date", "is_fully_booked", "is_unavailable", "created_at"}
	slotCols := []string{"id", "start_time", "end_time", "is_booked", "booking_id"}

	t.Run("no entry for the date", func(t *testing.T) {
		db, mock := newSQLMock(t)
		defer db.DB.Close()
		mock.ExpectQuery("SELECT(.+)FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows(entryCols))

		_, err := testBookingService(db).CreateBooking(actor, input)
		if err == nil || err.Error() != "No availability found for the requested date" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("blackout date", func(t *testing.T) {
		db, mock := newSQLMock(t)
		defer db.DB.Close()
		mock.ExpectQuery("SELECT(.+)FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows(entryCols).AddRow(7, 3, date, false, true, time.Now()))
		mock.ExpectQuery("SELECT(.+)FROM availability_slots").
			WillReturnRows(sqlmock.NewRows(slotCols))

		_, err := testBookingService(db).CreateBooking(actor, input)
		if err == nil || err.Error() != "Vendor is not available on the requested date" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("slot already booked", func(t *testing.T) {
		db, mock := newSQLMock(t)
		defer db.DB.Close()
		mock.ExpectQuery("SELECT(.+)FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows(entryCols).AddRow(7, 3, date, false, false, time.Now()))
		mock.ExpectQuery("SELECT(.+)FROM availability_slots").
			WillReturnRows(sqlmock.NewRows(slotCols).AddRow(71, "10:00", "12:00", true, 99))

		_, err := testBookingService(db).CreateBooking(actor, input)
		if err == nil || err.Error() != "The requested time slot is not available" {
			t.Fatalf("unexpected error: %v", err)
		}
		if !domain.IsConflict(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	db, _ := newSQLMock(t)
	defer db.DB.Close()

	_, err := testBookingService(db).CreateBooking(domain.Actor{UserID: 1, Role: domain.RoleUser}, CreateBookingInput{
		EventID:     2,
		VendorID:    3,
		ServiceID:   4,
		BookingDate: time.Now().Add(-time.Hour),
		TimeSlot:    models.TimeSlot{StartTime: "10:00", EndTime: "12:00"},
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Booking date must be in the future" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
