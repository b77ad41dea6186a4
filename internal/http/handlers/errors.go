package handlers

import (
	"net/http"

	"eventease-backend/internal/config"
	"eventease-backend/internal/domain"
	"eventease-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends the standard failure payload. The raw error is exposed
// only in development.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"success":    false,
		"msg":        message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil && config.Current.IsDevelopment() {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Conflicts are
// reported as 400 so the client sees one failure shape for rejected
// requests.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	default:
		RespondError(c, http.StatusInternalServerError, "Server error occurred", err)
	}
}
