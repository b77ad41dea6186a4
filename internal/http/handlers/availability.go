package handlers

import (
	"net/http"

	"eventease-backend/internal/config"
	"eventease-backend/internal/http/middleware"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/services"
	"eventease-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func newAvailabilityService(c *gin.Context) services.AvailabilityService {
	db := config.DB
	return services.AvailabilityService{
		Repo:      repositories.AvailabilityRepository{DB: db},
		Vendors:   repositories.VendorRepository{DB: db},
		RequestID: middleware.GetRequestID(c),
	}
}

// AddAvailability creates one calendar date for the caller's vendor profile.
func AddAvailability(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	var req services.AvailabilityInput
	if !BindJSONOrError(c, &req) {
		return
	}
	entry, err := newAvailabilityService(c).AddEntry(actor, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"msg":          "Availability added successfully",
		"availability": entry,
	})
}

// GetAvailability lists the caller's full slot calendar.
func GetAvailability(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	entries, err := newAvailabilityService(c).ListEntries(actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"availability": entries,
	})
}

// UpdateAvailability patches slots and/or the blackout flag on one entry.
func UpdateAvailability(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req services.AvailabilityPatch
	if !BindJSONOrError(c, &req) {
		return
	}
	entry, err := newAvailabilityService(c).UpdateEntry(actor, id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"msg":          "Availability updated successfully",
		"availability": entry,
	})
}

// DeleteAvailability removes one calendar date.
func DeleteAvailability(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := newAvailabilityService(c).DeleteEntry(actor, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "Availability deleted successfully",
	})
}

// CheckVendorAvailability is the public date probe used by booking forms.
func CheckVendorAvailability(c *gin.Context) {
	vendorID, ok := PathID(c, "vendorId")
	if !ok {
		return
	}
	day, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid date format", nil)
		return
	}

	available, err := newAvailabilityService(c).IsDateAvailable(vendorID, day)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Server error occurred while checking availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"available": available,
	})
}
