package services

import (
	"testing"
	"time"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func testAvailabilityService(db sqlmockDB) AvailabilityService {
	return AvailabilityService{
		Repo: repositories.AvailabilityRepository{DB: db.DB},
		FetchVendorByUser: func(int64) (models.VendorInfo, error) {
			return models.VendorInfo{ID: 3, OwnerUserID: 5}, nil
		},
	}
}

func TestAddEntryRejectsPastDate(t *testing.T) {
	db, _ := newSQLMock(t)
	defer db.DB.Close()

	svc := testAvailabilityService(db)
	svc.Now = func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local) }

	_, err := svc.AddEntry(domain.Actor{UserID: 5, Role: domain.RoleVendor}, AvailabilityInput{
		Date:  "2026-06-14",
		Slots: []models.SlotInput{{StartTime: "09:00", EndTime: "11:00"}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Cannot add availability for past dates" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestAddEntryRejectsBadDateAndSlotFormat(t *testing.T) {
	db, _ := newSQLMock(t)
	defer db.DB.Close()
	svc := testAvailabilityService(db)
	actor := domain.Actor{UserID: 5, Role: domain.RoleVendor}

	_, err := svc.AddEntry(actor, AvailabilityInput{Date: "15-06-2026"})
	if err == nil || err.Error() != "Invalid date format" {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.Now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local) }
	_, err = svc.AddEntry(actor, AvailabilityInput{
		Date:  "2026-06-15",
		Slots: []models.SlotInput{{StartTime: "9am", EndTime: "11:00"}},
	})
	if err == nil || err.Error() != "Time must be in HH:MM format" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddEntryDuplicateDateConflict(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()

	mock.ExpectQuery("SELECT(.+)FROM vendor_availability").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "vendor_id", "date", "is_fully_booked", "is_unavailable", "created_at"},
		).AddRow(7, 3, time.Now(), false, false, time.Now()))
	mock.ExpectQuery("SELECT(.+)FROM availability_slots").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "is_booked", "booking_id"}))

	svc := testAvailabilityService(db)
	svc.Now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local) }

	_, err := svc.AddEntry(domain.Actor{UserID: 5, Role: domain.RoleVendor}, AvailabilityInput{
		Date:  "2026-06-15",
		Slots: []models.SlotInput{{StartTime: "09:00", EndTime: "11:00"}},
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Availability already exists for this date" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestManageAvailabilityRequiresVendorRole(t *testing.T) {
	db, _ := newSQLMock(t)
	defer db.DB.Close()
	svc := testAvailabilityService(db)

	_, err := svc.ListEntries(domain.Actor{UserID: 1, Role: domain.RoleUser})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteEntryBlockedByBookedSlots(t *testing.T) {
	db, mock := newSQLMock(t)
	defer db.DB.Close()

	mock.ExpectQuery("SELECT(.+)FROM vendor_availability").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "vendor_id", "date", "is_fully_booked", "is_unavailable", "created_at"},
		).AddRow(7, 3, time.Now(), false, false, time.Now()))
	mock.ExpectQuery("SELECT(.+)FROM availability_slots").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "end_time", "is_booked", "booking_id"}).
			AddRow(71, "09:00", "11:00", true, 10))
	mock.ExpectQuery("SELECT COUNT(.+)is_booked=1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	svc := testAvailabilityService(db)
	err := svc.DeleteEntry(domain.Actor{UserID: 5, Role: domain.RoleVendor}, 7)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != "Cannot delete availability with booked slots" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestIsDateAvailable(t *testing.T) {
	entryCols := []string{"id", "vendor_id", "date", "is_fully_booked", "is_unavailable", "created_at"}
	slotCols := []string{"id", "start_time", "end_time", "is_booked", "booking_id"}

	t.Run("missing entry is unavailable", func(t *testing.T) {
		db, mock := newSQLMock(t)
		defer db.DB.Close()
		mock.ExpectQuery("SELECT(.+)FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows(entryCols))

		ok, err := testAvailabilityService(db).IsDateAvailable(3, time.Now())
		if err != nil || ok {
			t.Fatalf("expected unavailable without error, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("open slot is available", func(t *testing.T) {
		db, mock := newSQLMock(t)
		defer db.DB.Close()
		mock.ExpectQuery("SELECT(.+)FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows(entryCols).AddRow(7, 3, time.Now(), false, false, time.Now()))
		mock.ExpectQuery("SELECT(.+)FROM availability_slots").
			WillReturnRows(sqlmock.NewRows(slotCols).
				AddRow(71, "09:00", "11:00", true, 10).
				AddRow(72, "13:00", "15:00", false, nil))

		ok, err := testAvailabilityService(db).IsDateAvailable(3, time.Now())
		if err != nil || !ok {
			t.Fatalf("expected available, got ok=%v err=%v", ok, err)
		}
	})
}
