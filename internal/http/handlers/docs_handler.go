package handlers

import (
	"net/http"

	"eventease-backend/internal/config"
	"eventease-backend/internal/http/middleware"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func newDocsService(c *gin.Context) services.DocsService {
	db := config.DB
	return services.DocsService{
		Bookings:  repositories.BookingRepository{DB: db},
		Vendors:   repositories.VendorRepository{DB: db},
		Events:    repositories.EventRepository{DB: db},
		Users:     repositories.UserRepository{DB: db},
		RequestID: middleware.GetRequestID(c),
	}
}

// GetBookingInvoicePDF returns the booking invoice (inline).
func GetBookingInvoicePDF(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := newDocsService(c).GenerateInvoice(actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GetBookingConfirmationPDF returns the booking confirmation sheet (inline).
func GetBookingConfirmationPDF(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := newDocsService(c).GenerateConfirmation(actor, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
