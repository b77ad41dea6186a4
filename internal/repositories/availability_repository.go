package repositories

import (
	"database/sql"
	"errors"
	"time"

	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/utils"
)

// Sentinel outcomes for slot mutations. The caller decides which ones are
// user-facing conflicts and which ones it tolerates.
var (
	ErrEntryNotFound = errors.New("availability entry not found")
	ErrSlotNotFound  = errors.New("time slot not found")
	ErrSlotTaken     = errors.New("time slot already booked")
	ErrSlotNotHeld   = errors.New("time slot not currently booked")
)

type AvailabilityRepository struct {
	DB *sql.DB
}

// GetEntry loads the availability entry plus slots for one calendar day.
// Returns ErrEntryNotFound when the vendor has no entry for that day.
func (r AvailabilityRepository) GetEntry(q DBTX, vendorID int64, day time.Time) (models.AvailabilityEntry, error) {
	var e models.AvailabilityEntry
	err := q.QueryRow(`
		SELECT id, vendor_id, date, is_fully_booked, is_unavailable, created_at
		FROM vendor_availability
		WHERE vendor_id=? AND date=?
		LIMIT 1
	`, vendorID, utils.FormatDate(day)).Scan(
		&e.ID, &e.VendorID, &e.Date, &e.IsFullyBooked, &e.IsUnavailable, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return e, ErrEntryNotFound
	}
	if err != nil {
		return e, err
	}

	e.Slots, err = r.loadSlots(q, e.ID)
	return e, err
}

// GetEntryByID loads one entry owned by vendorID, slots included.
func (r AvailabilityRepository) GetEntryByID(q DBTX, vendorID, entryID int64) (models.AvailabilityEntry, error) {
	var e models.AvailabilityEntry
	err := q.QueryRow(`
		SELECT id, vendor_id, date, is_fully_booked, is_unavailable, created_at
		FROM vendor_availability
		WHERE id=? AND vendor_id=?
		LIMIT 1
	`, entryID, vendorID).Scan(
		&e.ID, &e.VendorID, &e.Date, &e.IsFullyBooked, &e.IsUnavailable, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return e, ErrEntryNotFound
	}
	if err != nil {
		return e, err
	}

	e.Slots, err = r.loadSlots(q, e.ID)
	return e, err
}

// ListEntries returns all entries for a vendor ordered by date, slots included.
func (r AvailabilityRepository) ListEntries(vendorID int64) ([]models.AvailabilityEntry, error) {
	rows, err := r.DB.Query(`
		SELECT id, vendor_id, date, is_fully_booked, is_unavailable, created_at
		FROM vendor_availability
		WHERE vendor_id=?
		ORDER BY date ASC
	`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AvailabilityEntry{}
	for rows.Next() {
		var e models.AvailabilityEntry
		if err := rows.Scan(&e.ID, &e.VendorID, &e.Date, &e.IsFullyBooked, &e.IsUnavailable, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Slots, err = r.loadSlots(r.DB, entries[i].ID); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (r AvailabilityRepository) loadSlots(q DBTX, entryID int64) ([]models.Slot, error) {
	rows, err := q.Query(`
		SELECT id, start_time, end_time, is_booked, booking_id
		FROM availability_slots
		WHERE availability_id=?
		ORDER BY start_time ASC, end_time ASC
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []models.Slot{}
	for rows.Next() {
		var s models.Slot
		var bookingID sql.NullInt64
		if err := rows.Scan(&s.ID, &s.StartTime, &s.EndTime, &s.IsBooked, &bookingID); err != nil {
			return nil, err
		}
		if bookingID.Valid {
			s.BookingID = &bookingID.Int64
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// InsertEntry creates an entry plus its slots in one transaction. The unique
// (vendor_id, date) key backs up the duplicate pre-check under concurrency.
func (r AvailabilityRepository) InsertEntry(vendorID int64, day time.Time, slots []models.SlotInput, isUnavailable bool) (models.AvailabilityEntry, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return models.AvailabilityEntry{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO vendor_availability (vendor_id, date, is_fully_booked, is_unavailable)
		VALUES (?, ?, 0, ?)
	`, vendorID, utils.FormatDate(day), isUnavailable)
	if err != nil {
		return models.AvailabilityEntry{}, err
	}
	entryID, err := res.LastInsertId()
	if err != nil {
		return models.AvailabilityEntry{}, err
	}

	for _, s := range slots {
		if _, err := tx.Exec(`
			INSERT INTO availability_slots (availability_id, start_time, end_time, is_booked)
			VALUES (?, ?, ?, 0)
		`, entryID, s.StartTime, s.EndTime); err != nil {
			return models.AvailabilityEntry{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.AvailabilityEntry{}, err
	}
	return r.GetEntryByID(r.DB, vendorID, entryID)
}

// ReplaceSlots swaps an entry's slot list and recomputes is_fully_booked.
func (r AvailabilityRepository) ReplaceSlots(entryID int64, slots []models.SlotInput) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM availability_slots WHERE availability_id=?`, entryID); err != nil {
		return err
	}
	for _, s := range slots {
		if _, err := tx.Exec(`
			INSERT INTO availability_slots (availability_id, start_time, end_time, is_booked)
			VALUES (?, ?, ?, 0)
		`, entryID, s.StartTime, s.EndTime); err != nil {
			return err
		}
	}
	if err := r.RecomputeFullyBooked(tx, entryID); err != nil {
		return err
	}
	return tx.Commit()
}

// SetUnavailable flips the vendor-declared blackout flag.
func (r AvailabilityRepository) SetUnavailable(entryID int64, isUnavailable bool) error {
	_, err := r.DB.Exec(`UPDATE vendor_availability SET is_unavailable=? WHERE id=?`, isUnavailable, entryID)
	return err
}

// DeleteEntry removes an entry and its slots. The caller has already
// verified that no slot is booked.
func (r AvailabilityRepository) DeleteEntry(entryID int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM availability_slots WHERE availability_id=?`, entryID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM vendor_availability WHERE id=?`, entryID); err != nil {
		return err
	}
	return tx.Commit()
}

// CountBookedSlots reports how many of an entry's slots are currently held.
func (r AvailabilityRepository) CountBookedSlots(entryID int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM availability_slots WHERE availability_id=? AND is_booked=1
	`, entryID).Scan(&n)
	return n, err
}

// ReserveSlot marks the exact (startTime, endTime) slot as held by bookingID.
// The open-slot check and the write are a single conditional UPDATE so two
// concurrent confirms cannot both win; the loser sees ErrSlotTaken.
func (r AvailabilityRepository) ReserveSlot(q DBTX, vendorID int64, day time.Time, slot models.TimeSlot, bookingID int64) error {
	res, err := q.Exec(`
		UPDATE availability_slots s
		JOIN vendor_availability a ON a.id = s.availability_id
		SET s.is_booked = 1, s.booking_id = ?
		WHERE a.vendor_id = ? AND a.date = ?
		  AND s.start_time = ? AND s.end_time = ?
		  AND s.is_booked = 0
	`, bookingID, vendorID, utils.FormatDate(day), slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.classifySlotMiss(q, vendorID, day, slot)
	}

	return r.recomputeFullyBookedByDate(q, vendorID, day)
}

// ReleaseSlot frees the slot held for a cancelled booking. The entry's
// is_fully_booked goes to false unconditionally rather than being recomputed.
// TODO: recompute from the remaining slots like the reserve path does; a
// release always leaves at least one free slot, so false is safe but the two
// paths should not diverge.
func (r AvailabilityRepository) ReleaseSlot(q DBTX, vendorID int64, day time.Time, slot models.TimeSlot) error {
	res, err := q.Exec(`
		UPDATE availability_slots s
		JOIN vendor_availability a ON a.id = s.availability_id
		SET s.is_booked = 0, s.booking_id = NULL
		WHERE a.vendor_id = ? AND a.date = ?
		  AND s.start_time = ? AND s.end_time = ?
		  AND s.is_booked = 1
	`, vendorID, utils.FormatDate(day), slot.StartTime, slot.EndTime)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if err := r.classifySlotMiss(q, vendorID, day, slot); err != ErrSlotTaken {
			return err
		}
		return ErrSlotNotHeld
	}

	_, err = q.Exec(`
		UPDATE vendor_availability SET is_fully_booked = 0 WHERE vendor_id = ? AND date = ?
	`, vendorID, utils.FormatDate(day))
	return err
}

// classifySlotMiss distinguishes "no entry", "no such slot" and "slot held"
// after a zero-row conditional update.
func (r AvailabilityRepository) classifySlotMiss(q DBTX, vendorID int64, day time.Time, slot models.TimeSlot) error {
	var entryID int64
	err := q.QueryRow(`
		SELECT id FROM vendor_availability WHERE vendor_id=? AND date=? LIMIT 1
	`, vendorID, utils.FormatDate(day)).Scan(&entryID)
	if err == sql.ErrNoRows {
		return ErrEntryNotFound
	}
	if err != nil {
		return err
	}

	var n int
	err = q.QueryRow(`
		SELECT COUNT(*) FROM availability_slots
		WHERE availability_id=? AND start_time=? AND end_time=?
	`, entryID, slot.StartTime, slot.EndTime).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSlotNotFound
	}
	return ErrSlotTaken
}

// RecomputeFullyBooked derives is_fully_booked as AND over the entry's slots.
func (r AvailabilityRepository) RecomputeFullyBooked(q DBTX, entryID int64) error {
	var total, booked int
	err := q.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(is_booked), 0)
		FROM availability_slots WHERE availability_id=?
	`, entryID).Scan(&total, &booked)
	if err != nil {
		return err
	}
	fully := total > 0 && booked == total
	_, err = q.Exec(`UPDATE vendor_availability SET is_fully_booked=? WHERE id=?`, fully, entryID)
	return err
}

func (r AvailabilityRepository) recomputeFullyBookedByDate(q DBTX, vendorID int64, day time.Time) error {
	var entryID int64
	err := q.QueryRow(`
		SELECT id FROM vendor_availability WHERE vendor_id=? AND date=? LIMIT 1
	`, vendorID, utils.FormatDate(day)).Scan(&entryID)
	if err != nil {
		return err
	}
	return r.RecomputeFullyBooked(q, entryID)
}
