package handlers

import (
	"net/http"
	"strconv"

	"eventease-backend/internal/domain"
	"eventease-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "Request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request payload", err)
		return false
	}
	return true
}

// ActorOrError fetches the authenticated identity; the auth middleware
// guarantees it on protected routes.
func ActorOrError(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authentication required", nil)
		return domain.Actor{}, false
	}
	return actor, true
}

// PathID parses a positive int64 path parameter.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(name)); err == nil && v > 0 {
		return v
	}
	return fallback
}
