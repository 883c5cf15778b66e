// internal/handlers/notification.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BijayDhakal25/citizen-compass-app/internal/models"
	"github.com/BijayDhakal25/citizen-compass-app/internal/store"
)

type NotificationHandler struct {
	store *store.Store
}

func NewNotificationHandler(store *store.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the current user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")
	notifications := h.store.NotificationsByUser(userID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         len(notifications),
		"unread":        h.store.UnreadCount(userID),
	})
}

// UnreadCount reports how many notifications are still unread.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"unread": h.store.UnreadCount(c.GetString("user_id")),
	})
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.store.MarkNotificationRead(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Notification not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Error updating notification",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks every notification of the current user as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count := h.store.MarkAllNotificationsRead(c.Request.Context(), c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
		"updated": count,
	})
}

// GetSettings returns the notification delivery preferences.
func (h *NotificationHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.store.Settings()})
}

// UpdateSettings merges the supplied toggles into the current
// preferences. Absent fields keep their previous value.
func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	var patch models.NotificationSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	settings := h.store.UpdateSettings(c.Request.Context(), patch)
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
