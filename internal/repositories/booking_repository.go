package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"eventease-backend/internal/domain/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `
	id, event_id, vendor_id, user_id, service_id, booking_date,
	start_time, end_time, status, requirements, price,
	payment_status, payment_method, payment_transaction_id,
	payment_paid_amount, payment_paid_at,
	notes, cancellation_reason, cancelled_by, cancelled_at,
	created_at, updated_at`

// Insert persists a new booking and fills in its generated id.
func (r BookingRepository) Insert(q DBTX, b *models.Booking) error {
	res, err := q.Exec(`
		INSERT INTO bookings (
			event_id, vendor_id, user_id, service_id, booking_date,
			start_time, end_time, status, requirements, price,
			payment_status, payment_method
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.EventID, b.VendorID, b.UserID, b.ServiceID, b.BookingDate,
		b.TimeSlot.StartTime, b.TimeSlot.EndTime, b.Status, b.Requirements, b.Price,
		b.PaymentStatus, b.PaymentDetails.Method,
	)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	return err
}

func (r BookingRepository) GetByID(q DBTX, id int64) (models.Booking, error) {
	row := q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return b, ErrBookingNotFound
	}
	return b, err
}

// StatusUpdate carries the fields a status transition may touch. Nil
// pointers leave the column untouched.
type StatusUpdate struct {
	Status             string
	Notes              *string
	CancellationReason *string
	CancelledBy        *string
	CancelledAt        *time.Time
}

func (r BookingRepository) UpdateStatus(q DBTX, id int64, u StatusUpdate) error {
	sets := []string{"status=?"}
	args := []any{u.Status}
	if u.Notes != nil {
		sets = append(sets, "notes=?")
		args = append(args, *u.Notes)
	}
	if u.CancellationReason != nil {
		sets = append(sets, "cancellation_reason=?")
		args = append(args, *u.CancellationReason)
	}
	if u.CancelledBy != nil {
		sets = append(sets, "cancelled_by=?")
		args = append(args, *u.CancelledBy)
	}
	if u.CancelledAt != nil {
		sets = append(sets, "cancelled_at=?")
		args = append(args, *u.CancelledAt)
	}
	args = append(args, id)
	_, err := q.Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

// PaymentUpdate merges payment fields; unspecified ones keep their value.
type PaymentUpdate struct {
	PaymentStatus string
	Method        *string
	TransactionID *string
	PaidAmount    *float64
	PaidAt        *time.Time
}

func (r BookingRepository) UpdatePayment(q DBTX, id int64, u PaymentUpdate) error {
	sets := []string{"payment_status=?"}
	args := []any{u.PaymentStatus}
	if u.Method != nil {
		sets = append(sets, "payment_method=?")
		args = append(args, *u.Method)
	}
	if u.TransactionID != nil {
		sets = append(sets, "payment_transaction_id=?")
		args = append(args, *u.TransactionID)
	}
	if u.PaidAmount != nil {
		sets = append(sets, "payment_paid_amount=?")
		args = append(args, *u.PaidAmount)
	}
	if u.PaidAt != nil {
		sets = append(sets, "payment_paid_at=?")
		args = append(args, *u.PaidAt)
	}
	args = append(args, id)
	_, err := q.Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	return err
}

// Filter narrows the booking list. Exactly one of UserID/VendorID is set by
// the query service; admins may pass either through.
type Filter struct {
	UserID    int64
	VendorID  int64
	EventID   int64
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	SortDesc  bool
	Page      int
	Limit     int
}

// sortColumns whitelists client-facing sort fields against schema columns.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"bookingDate": "booking_date",
	"price":       "price",
	"status":      "status",
}

// buildBookingWhere renders the WHERE clause for a filter. Kept as a pure
// function so filter composition is testable without a database.
func buildBookingWhere(f Filter) (string, []any) {
	where := []string{}
	args := []any{}

	if f.UserID > 0 {
		where = append(where, "user_id=?")
		args = append(args, f.UserID)
	}
	if f.VendorID > 0 {
		where = append(where, "vendor_id=?")
		args = append(args, f.VendorID)
	}
	if f.EventID > 0 {
		where = append(where, "event_id=?")
		args = append(args, f.EventID)
	}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, f.Status)
	}
	if f.StartDate != nil {
		where = append(where, "booking_date >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		where = append(where, "booking_date <= ?")
		args = append(args, *f.EndDate)
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// buildBookingOrder renders the ORDER BY clause; unknown sort fields fall
// back to the default createdAt descending.
func buildBookingOrder(f Filter) string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		return " ORDER BY created_at DESC"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// List returns one page of bookings plus the unpaged total.
func (r BookingRepository) List(f Filter) ([]models.Booking, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	whereSQL, args := buildBookingWhere(f)

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings` + whereSQL + buildBookingOrder(f) + ` LIMIT ? OFFSET ?`
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var (
		b             models.Booking
		transactionID string
		paidAt        sql.NullTime
		cancelledAt   sql.NullTime
	)
	err := row.Scan(
		&b.ID, &b.EventID, &b.VendorID, &b.UserID, &b.ServiceID, &b.BookingDate,
		&b.TimeSlot.StartTime, &b.TimeSlot.EndTime, &b.Status, &b.Requirements, &b.Price,
		&b.PaymentStatus, &b.PaymentDetails.Method, &transactionID,
		&b.PaymentDetails.PaidAmount, &paidAt,
		&b.Notes, &b.CancellationReason, &b.CancelledBy, &cancelledAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}
	b.PaymentDetails.TransactionID = transactionID
	if paidAt.Valid {
		b.PaymentDetails.PaidAt = &paidAt.Time
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}
	return b, nil
}
