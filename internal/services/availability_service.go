package services

import (
	"fmt"
	"time"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/utils"
)

// AvailabilityService owns the vendor slot calendars: which
// (vendor, date, timeSlot) triples are bookable.
type AvailabilityService struct {
	Repo      repositories.AvailabilityRepository
	Vendors   repositories.VendorRepository
	RequestID string

	// Test seams; nil means use the repositories above.
	FetchVendorByUser func(int64) (models.VendorInfo, error)
	Now               func() time.Time
}

// AvailabilityInput is the vendor-supplied shape for a new calendar entry.
type AvailabilityInput struct {
	Date          string             `json:"date"`
	Slots         []models.SlotInput `json:"slots"`
	IsUnavailable bool               `json:"isUnavailable"`
}

// AvailabilityPatch updates an existing entry; nil fields stay untouched.
type AvailabilityPatch struct {
	Slots         []models.SlotInput `json:"slots"`
	IsUnavailable *bool              `json:"isUnavailable"`
}

func (s AvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AvailabilityService) vendorByUser(userID int64) (models.VendorInfo, error) {
	if s.FetchVendorByUser != nil {
		return s.FetchVendorByUser(userID)
	}
	return s.Vendors.GetByUserID(userID)
}

// vendorFor resolves the vendor profile the actor manages.
func (s AvailabilityService) vendorFor(actor domain.Actor) (models.VendorInfo, error) {
	if !CanManageAvailability(actor) {
		return models.VendorInfo{}, domain.ForbiddenError{Msg: "Only vendors can manage availability"}
	}
	vendor, err := s.vendorByUser(actor.UserID)
	if err == repositories.ErrVendorNotFound {
		return vendor, domain.NotFoundError{Msg: "Vendor profile not found"}
	}
	if err != nil {
		return vendor, domain.InternalError{Msg: "Server error occurred while resolving vendor profile", Err: err}
	}
	return vendor, nil
}

// AddEntry creates one calendar date for the actor's vendor profile.
// Duplicate dates and past dates are rejected.
func (s AvailabilityService) AddEntry(actor domain.Actor, in AvailabilityInput) (models.AvailabilityEntry, error) {
	vendor, err := s.vendorFor(actor)
	if err != nil {
		return models.AvailabilityEntry{}, err
	}

	day, err := utils.ParseDate(in.Date)
	if err != nil {
		return models.AvailabilityEntry{}, domain.ValidationError{Msg: "Invalid date format"}
	}
	if day.Before(utils.DayStart(s.now())) {
		return models.AvailabilityEntry{}, domain.ValidationError{Msg: "Cannot add availability for past dates"}
	}
	if err := validateSlotInputs(in.Slots); err != nil {
		return models.AvailabilityEntry{}, err
	}

	if _, err := s.Repo.GetEntry(s.Repo.DB, vendor.ID, day); err == nil {
		return models.AvailabilityEntry{}, domain.ConflictError{Msg: "Availability already exists for this date"}
	} else if err != repositories.ErrEntryNotFound {
		return models.AvailabilityEntry{}, domain.InternalError{Msg: "Server error occurred while adding availability", Err: err}
	}

	entry, err := s.Repo.InsertEntry(vendor.ID, day, in.Slots, in.IsUnavailable)
	if err != nil {
		return models.AvailabilityEntry{}, domain.InternalError{Msg: "Server error occurred while adding availability", Err: err}
	}

	utils.LogEvent(s.RequestID, "availability", "add_entry",
		fmt.Sprintf("vendor_id=%d date=%s slots=%d", vendor.ID, utils.FormatDate(day), len(in.Slots)))
	return entry, nil
}

// ListEntries returns the actor's full calendar.
func (s AvailabilityService) ListEntries(actor domain.Actor) ([]models.AvailabilityEntry, error) {
	vendor, err := s.vendorFor(actor)
	if err != nil {
		return nil, err
	}
	entries, err := s.Repo.ListEntries(vendor.ID)
	if err != nil {
		return nil, domain.InternalError{Msg: "Server error occurred while fetching availability", Err: err}
	}
	return entries, nil
}

// UpdateEntry patches slots and/or the blackout flag on one entry.
// Replacing the slot list recomputes the derived fully-booked flag.
func (s AvailabilityService) UpdateEntry(actor domain.Actor, entryID int64, patch AvailabilityPatch) (models.AvailabilityEntry, error) {
	vendor, err := s.vendorFor(actor)
	if err != nil {
		return models.AvailabilityEntry{}, err
	}

	entry, err := s.Repo.GetEntryByID(s.Repo.DB, vendor.ID, entryID)
	if err == repositories.ErrEntryNotFound {
		return models.AvailabilityEntry{}, domain.NotFoundError{Msg: "Availability not found"}
	}
	if err != nil {
		return models.AvailabilityEntry{}, domain.InternalError{Msg: "Server error occurred while updating availability", Err: err}
	}

	if patch.Slots != nil {
		if err := validateSlotInputs(patch.Slots); err != nil {
			return models.AvailabilityEntry{}, err
		}
		if err := s.Repo.ReplaceSlots(entry.ID, patch.Slots); err != nil {
			return models.AvailabilityEntry{}, domain.InternalError{Msg: "Server error occurred while updating availability", Err: err}
		}
	}
	if patch.IsUnavailable != nil {
		if err := s.Repo.SetUnavailable(entry.ID, *patch.IsUnavailable); err != nil {
			return models.AvailabilityEntry{}, domain.InternalError{Msg: "Server error occurred while updating availability", Err: err}
		}
	}

	updated, err := s.Repo.GetEntryByID(s.Repo.DB, vendor.ID, entryID)
	if err != nil {
		return models.AvailabilityEntry{}, domain.InternalError{Msg: "Server error occurred while updating availability", Err: err}
	}
	utils.LogEvent(s.RequestID, "availability", "update_entry", fmt.Sprintf("entry_id=%d", entryID))
	return updated, nil
}

// DeleteEntry removes a calendar date. Blocked while any slot is held by a
// booking.
func (s AvailabilityService) DeleteEntry(actor domain.Actor, entryID int64) error {
	vendor, err := s.vendorFor(actor)
	if err != nil {
		return err
	}

	entry, err := s.Repo.GetEntryByID(s.Repo.DB, vendor.ID, entryID)
	if err == repositories.ErrEntryNotFound {
		return domain.NotFoundError{Msg: "Availability not found"}
	}
	if err != nil {
		return domain.InternalError{Msg: "Server error occurred while deleting availability", Err: err}
	}

	booked, err := s.Repo.CountBookedSlots(entry.ID)
	if err != nil {
		return domain.InternalError{Msg: "Server error occurred while deleting availability", Err: err}
	}
	if booked > 0 {
		return domain.ConflictError{Msg: "Cannot delete availability with booked slots"}
	}

	if err := s.Repo.DeleteEntry(entry.ID); err != nil {
		return domain.InternalError{Msg: "Server error occurred while deleting availability", Err: err}
	}
	utils.LogEvent(s.RequestID, "availability", "delete_entry", fmt.Sprintf("entry_id=%d", entryID))
	return nil
}

// IsDateAvailable reports whether any slot is bookable on that calendar day:
// false when the entry is missing, blacked out, fully booked or has no free
// slot.
func (s AvailabilityService) IsDateAvailable(vendorID int64, day time.Time) (bool, error) {
	entry, err := s.Repo.GetEntry(s.Repo.DB, vendorID, day)
	if err == repositories.ErrEntryNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if entry.IsUnavailable || entry.IsFullyBooked {
		return false, nil
	}
	return entry.HasOpenSlot(), nil
}

// FindOpenSlot locates the exact free (startTime, endTime) slot. A missing
// date entry and a taken/unknown slot are distinct failures so callers can
// surface different messages.
func (s AvailabilityService) FindOpenSlot(vendorID int64, day time.Time, slot models.TimeSlot) (models.Slot, error) {
	entry, err := s.Repo.GetEntry(s.Repo.DB, vendorID, day)
	if err == repositories.ErrEntryNotFound {
		return models.Slot{}, domain.NotFoundError{Msg: "No availability found for the requested date"}
	}
	if err != nil {
		return models.Slot{}, domain.InternalError{Msg: "Server error occurred while checking availability", Err: err}
	}
	if entry.IsUnavailable || entry.IsFullyBooked {
		return models.Slot{}, domain.ConflictError{Msg: "Vendor is not available on the requested date"}
	}
	for _, cand := range entry.Slots {
		if cand.StartTime == slot.StartTime && cand.EndTime == slot.EndTime && !cand.IsBooked {
			return cand, nil
		}
	}
	return models.Slot{}, domain.ConflictError{Msg: "The requested time slot is not available"}
}

func validateSlotInputs(slots []models.SlotInput) error {
	for _, s := range slots {
		if !utils.IsClockTime(s.StartTime) || !utils.IsClockTime(s.EndTime) {
			return domain.ValidationError{Msg: "Time must be in HH:MM format"}
		}
	}
	return nil
}
