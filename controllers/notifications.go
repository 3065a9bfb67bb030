package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns the caller's notifications, newest first.
// Pass unread=1 to fetch only unread ones (the polling path).
func (h *Handler) ListNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "1"
	notes, err := h.Notifier.ListForUser(currentUser(c).ID, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// MarkNotificationsRead marks one notification (?id=) or, without an id,
// all of the caller's notifications read. Idempotent either way.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	user := currentUser(c)

	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
			return
		}
		if err := h.Notifier.MarkRead(user.ID, uint(id)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"read": true})
		return
	}

	if err := h.Notifier.MarkAllRead(user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
