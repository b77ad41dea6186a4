package services

import (
	"time"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/utils"
)

func parseQueryDate(s string) (*time.Time, error) {
	day, err := utils.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// BookingQueryService serves the read side: paged lists scoped to the caller
// and single-booking fetches with visibility checks.
type BookingQueryService struct {
	Bookings repositories.BookingRepository
	Vendors  repositories.VendorRepository

	FetchVendor func(int64) (models.VendorInfo, error)
}

// ListQuery mirrors the query-string filters of the list endpoints.
type ListQuery struct {
	EventID   int64
	Status    string
	StartDate string
	EndDate   string
	SortBy    string
	SortDesc  bool
	Page      int
	Limit     int
}

func (s BookingQueryService) vendor(id int64) (models.VendorInfo, error) {
	if s.FetchVendor != nil {
		return s.FetchVendor(id)
	}
	return s.Vendors.GetByID(id)
}

func (s BookingQueryService) toFilter(q ListQuery) (repositories.Filter, error) {
	f := repositories.Filter{
		EventID:  q.EventID,
		SortBy:   q.SortBy,
		SortDesc: q.SortDesc,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	if q.Status != "" {
		if !models.IsTransitionStatus(q.Status) && q.Status != models.BookingPending {
			return f, domain.ValidationError{Msg: "Invalid status filter"}
		}
		f.Status = q.Status
	}
	if q.StartDate != "" {
		day, err := parseQueryDate(q.StartDate)
		if err != nil {
			return f, domain.ValidationError{Msg: "Invalid date format"}
		}
		f.StartDate = day
	}
	if q.EndDate != "" {
		day, err := parseQueryDate(q.EndDate)
		if err != nil {
			return f, domain.ValidationError{Msg: "Invalid date format"}
		}
		f.EndDate = day
	}
	return f, nil
}

// ListUserBookings returns the caller's own bookings. The user scope is
// forced from the actor, never from client input.
func (s BookingQueryService) ListUserBookings(actor domain.Actor, q ListQuery) ([]models.Booking, domain.Pagination, error) {
	f, err := s.toFilter(q)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	f.UserID = actor.UserID
	return s.list(f)
}

// ListVendorBookings returns the bookings against the caller's vendor
// profile.
func (s BookingQueryService) ListVendorBookings(actor domain.Actor, q ListQuery) ([]models.Booking, domain.Pagination, error) {
	if !CanListVendorBookings(actor) {
		return nil, domain.Pagination{}, domain.ForbiddenError{Msg: "Only vendors can access their bookings"}
	}
	vendor, err := s.Vendors.GetByUserID(actor.UserID)
	if err == repositories.ErrVendorNotFound {
		return nil, domain.Pagination{}, domain.NotFoundError{Msg: "Vendor profile not found"}
	}
	if err != nil {
		return nil, domain.Pagination{}, domain.InternalError{Msg: "Server error occurred while fetching bookings", Err: err}
	}

	f, err := s.toFilter(q)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	f.VendorID = vendor.ID
	return s.list(f)
}

func (s BookingQueryService) list(f repositories.Filter) ([]models.Booking, domain.Pagination, error) {
	bookings, total, err := s.Bookings.List(f)
	if err != nil {
		return nil, domain.Pagination{}, domain.InternalError{Msg: "Server error occurred while fetching bookings", Err: err}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}
	return bookings, domain.Pagination{
		Page:       f.Page,
		Limit:      f.Limit,
		Total:      total,
		TotalPages: pages,
	}, nil
}

// GetBookingByID fetches one booking visible to the caller: the booking
// owner, the vendor behind it, or an admin.
func (s BookingQueryService) GetBookingByID(actor domain.Actor, id int64) (models.Booking, error) {
	booking, err := s.Bookings.GetByID(s.Bookings.DB, id)
	if err == repositories.ErrBookingNotFound {
		return models.Booking{}, domain.NotFoundError{Msg: "Booking not found"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "Server error occurred while fetching booking", Err: err}
	}

	var vendorOwnerID int64
	if vendor, err := s.vendor(booking.VendorID); err == nil {
		vendorOwnerID = vendor.OwnerUserID
	}
	if !CanViewBooking(actor, booking.UserID, vendorOwnerID) {
		return models.Booking{}, domain.ForbiddenError{Msg: "You don't have permission to view this booking"}
	}
	return booking, nil
}
