package api

import (
	"log"
	stdhttp "net/http"

	intconfig "eventease-backend/internal/config"
	"eventease-backend/internal/domain"
	h "eventease-backend/internal/http/handlers"
	"eventease-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"msg":     "Route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Public availability probe used by booking forms.
		api.GET("/availability/:vendorId/check", h.CheckVendorAvailability)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth())

		bookings := authed.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetUserBookings)
		bookings.GET("/vendor", h.GetVendorBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.PATCH("/:id/status", h.UpdateBookingStatus)
		bookings.PATCH("/:id/cancel", h.CancelBooking)
		bookings.PATCH("/:id/payment", h.UpdatePaymentStatus)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)
		bookings.GET("/:id/confirmation", h.GetBookingConfirmationPDF)

		availability := authed.Group("/vendors/availability")
		availability.Use(middleware.RequireRoles(domain.RoleVendor, domain.RoleAdmin))
		availability.POST("", h.AddAvailability)
		availability.GET("", h.GetAvailability)
		availability.PUT("/:id", h.UpdateAvailability)
		availability.DELETE("/:id", h.DeleteAvailability)

		notifications := authed.Group("/notifications")
		notifications.GET("", h.GetNotifications)
		notifications.PATCH("/:id/read", h.MarkNotificationRead)
		notifications.PATCH("/read-all", h.MarkAllNotificationsRead)
	}

	return r
}
