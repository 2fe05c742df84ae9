package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"launchsite-backend/internal/events"
	"launchsite-backend/internal/models"
	"launchsite-backend/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFlow(t *testing.T) {
	db := testDB(t)
	bus := events.NewMemoryBus()
	feed := notify.NewFeed(db, bus)
	h := NewNotificationHandler(feed)

	router := gin.New()
	router.GET("/notifications", h.List)
	router.PUT("/notifications/:id/read", h.MarkRead)

	form := models.ContactForm{FullName: "דן כהן", Email: "dan@example.com", Phone: "0501234567"}
	require.NoError(t, db.Create(&form).Error)

	event, err := events.NewInsertEvent(events.TableContactForms, form)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), event))

	var resp struct {
		Notifications []notify.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unread_count"`
	}

	w := doJSON(t, router, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, 1, resp.UnreadCount)
	assert.False(t, resp.Notifications[0].Read)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/notifications/%d/read", form.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, 0, resp.UnreadCount)
	assert.True(t, resp.Notifications[0].Read)
}

func TestMarkReadBadID(t *testing.T) {
	db := testDB(t)
	feed := notify.NewFeed(db, events.NewMemoryBus())
	h := NewNotificationHandler(feed)

	router := gin.New()
	router.PUT("/notifications/:id/read", h.MarkRead)

	w := doJSON(t, router, http.MethodPut, "/notifications/abc/read", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
