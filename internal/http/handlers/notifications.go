package handlers

import (
	"net/http"

	"eventease-backend/internal/config"
	"eventease-backend/internal/http/middleware"
	"eventease-backend/internal/repositories"
	"eventease-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func newNotificationService(c *gin.Context) services.NotificationService {
	return services.NotificationService{
		Repo:      repositories.NotificationRepository{DB: config.DB},
		RequestID: middleware.GetRequestID(c),
	}
}

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	items, total, unread, err := newNotificationService(c).List(actor, page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": items,
		"total":         total,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead acknowledges one notification.
func MarkNotificationRead(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := newNotificationService(c).MarkRead(actor, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "Notification marked as read",
	})
}

// MarkAllNotificationsRead acknowledges everything unread.
func MarkAllNotificationsRead(c *gin.Context) {
	actor, ok := ActorOrError(c)
	if !ok {
		return
	}
	n, err := newNotificationService(c).MarkAllRead(actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "All notifications marked as read",
		"updated": n,
	})
}
