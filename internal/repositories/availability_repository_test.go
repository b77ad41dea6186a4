package repositories

import (
	"database/sql"
	"testing"
	"time"

	"eventease-backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, AvailabilityRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return db, mock, AvailabilityRepository{DB: db}
}

var testSlot = models.TimeSlot{StartTime: "10:00", EndTime: "12:00"}

func TestReserveSlotWinsAndRecomputes(t *testing.T) {
	db, mock, repo := newMockRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE availability_slots").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM vendor_availability").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT COUNT(.+)FROM availability_slots").
		WillReturnRows(sqlmock.NewRows([]string{"total", "booked"}).AddRow(2, 2))
	mock.ExpectExec("UPDATE vendor_availability SET is_fully_booked").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ReserveSlot(db, 3, time.Now(), testSlot, 10); err != nil {
		t.Fatalf("ReserveSlot returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSlotClassifiesMisses(t *testing.T) {
	t.Run("no entry for the date", func(t *testing.T) {
		db, mock, repo := newMockRepo(t)
		defer db.Close()

		mock.ExpectExec("UPDATE availability_slots").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		if err := repo.ReserveSlot(db, 3, time.Now(), testSlot, 10); err != ErrEntryNotFound {
			t.Fatalf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("no such slot", func(t *testing.T) {
		db, mock, repo := newMockRepo(t)
		defer db.Close()

		mock.ExpectExec("UPDATE availability_slots").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery("SELECT COUNT(.+)FROM availability_slots").
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

		if err := repo.ReserveSlot(db, 3, time.Now(), testSlot, 10); err != ErrSlotNotFound {
			t.Fatalf("expected ErrSlotNotFound, got %v", err)
		}
	})

	t.Run("slot already held", func(t *testing.T) {
		db, mock, repo := newMockRepo(t)
		defer db.Close()

		mock.ExpectExec("UPDATE availability_slots").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT id FROM vendor_availability").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery("SELECT COUNT(.+)FROM availability_slots").
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

		if err := repo.ReserveSlot(db, 3, time.Now(), testSlot, 10); err != ErrSlotTaken {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})
}

func TestReleaseSlotNotHeld(t *testing.T) {
	db, mock, repo := newMockRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE availability_slots").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM vendor_availability").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT COUNT(.+)FROM availability_slots").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	if err := repo.ReleaseSlot(db, 3, time.Now(), testSlot); err != ErrSlotNotHeld {
		t.Fatalf("expected ErrSlotNotHeld, got %v", err)
	}
}
