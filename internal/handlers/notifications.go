package handlers

import (
	"net/http"
	"strconv"

	"launchsite-backend/internal/notify"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	feed *notify.Feed
}

func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

func (h *NotificationHandler) List(c *gin.Context) {
	items, unread := h.feed.Items()
	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "מזהה התראה לא תקין"})
		return
	}

	h.feed.MarkRead(uint(id))
	c.JSON(http.StatusOK, gin.H{"message": "ההתראה סומנה כנקראה"})
}
