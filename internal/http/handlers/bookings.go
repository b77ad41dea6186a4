package handlers

import (
	"net/http"
	"time"

	"eventease-backend/internal/config"
	"eventease-backend/internal/domain/models"
	"eventease-backend/internal/http/middleware"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/services"
	"eventease-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func newBookingService(c *gin.Context) services.BookingService {
	db := config.DB
	return services.BookingService{
		DB:           db,
		Bookings:     repositories.BookingRepository{DB: db},
		Availability: repositories.AvailabilityRepository{DB: db},
		Vendors:      repositories.VendorRepository{DB: db},
		Events:       repositories.EventRepository{DB: db},
		Outbox:       repositories.OutboxRepository{DB: db},
		RequestID:    middleware.GetRequestID(c),
	}
}

func newBookingQueryService() services.BookingQueryService {
	db := config.DB
	return services.BookingQueryService{
		Bookings: repositories.BookingRepository{DB: db},
		Vendors:  repositories.VendorRepository{DB: db},
	}
}

type createBookingRequest struct {
	EventID      int64           `json:"eventId"`
	VendorID     int64           `json:"vendorId"`
	ServiceID    int64           `json:"serviceId"`
	BookingDate  string          `json:"bookingDate"`
	TimeSlot     models.TimeSlot `json:"timeSlot"`
	Requirements string          `json:"requirements"`
	Price        float64         `json:"price"`
}

// parseBookingDate accepts a full RFC3339 timestamp or a bare calendar date.
func parseBookingDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := utils.ParseDate(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CreateBooking books a vendor service for an event. The booking starts
// pending; the slot is held only once the vendor confirms.
func CreateBooking(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.BookingDate == "" {
		RespondError(c, http.StatusBadRequest, "Missing required fields", nil)
		return
	}
	bookingDate, ok := parseBookingDate(req.BookingDate)
	if !ok {
		RespondError(c, http.StatusBadRequest, "Invalid date format", nil)
		return
	}

	booking, err := newBookingService(c).CreateBooking(actor, services.CreateBookingInput{
		EventID:      req.EventID,
		VendorID:     req.VendorID,
		ServiceID:    req.ServiceID,
		BookingDate:  bookingDate,
		TimeSlot:     req.TimeSlot,
		Requirements: req.Requirements,
		Price:        req.Price,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"msg":     "Booking created successfully",
		"booking": booking,
	})
}

func listQueryFrom(c *gin.Context) services.ListQuery {
	return services.ListQuery{
		EventID:   int64(queryInt(c, "eventId", 0)),
		Status:    c.Query("status"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortDesc:  c.DefaultQuery("sortOrder", "desc") == "desc",
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}
}

// GetUserBookings lists the caller's own bookings.
func GetUserBookings(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	bookings, page, err := newBookingQueryService().ListUserBookings(actor, listQueryFrom(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"bookings":    bookings,
		"count":       len(bookings),
		"total":       page.Total,
		"totalPages":  page.TotalPages,
		"currentPage": page.Page,
	})
}

// GetVendorBookings lists bookings against the caller's vendor profile.
func GetVendorBookings(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	bookings, page, err := newBookingQueryService().ListVendorBookings(actor, listQueryFrom(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"bookings":    bookings,
		"count":       len(bookings),
		"total":       page.Total,
		"totalPages":  page.TotalPages,
		"currentPage": page.Page,
	})
}

// GetBookingByID returns one booking visible to the caller.
func GetBookingByID(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	booking, err := newBookingQueryService().GetBookingByID(actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": booking,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateBookingStatus applies a vendor-side transition.
func UpdateBookingStatus(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := newBookingService(c).UpdateStatus(actor, id, req.Status, req.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "Booking status updated successfully",
		"booking": booking,
	})
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBooking is the booking owner's cancellation.
func CancelBooking(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req cancelBookingRequest
	if c.Request.Body != nil {
		_ = c.ShouldBindJSON(&req)
	}
	booking, err := newBookingService(c).CancelBooking(actor, id, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "Booking cancelled successfully",
		"booking": booking,
	})
}

type updatePaymentRequest struct {
	PaymentStatus  string                        `json:"paymentStatus"`
	PaymentDetails *services.PaymentDetailsInput `json:"paymentDetails"`
}

// UpdatePaymentStatus advances the payment axis and merges payment details.
func UpdatePaymentStatus(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req updatePaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := newBookingService(c).UpdatePaymentStatus(actor, id, req.PaymentStatus, req.PaymentDetails)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "Payment status updated successfully",
		"booking": booking,
	})
}
