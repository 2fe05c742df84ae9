package handlers

import (
	"net/http"

	"launchsite-backend/internal/analytics"
	"launchsite-backend/internal/events"
	"launchsite-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type VisitHandler struct {
	db  *gorm.DB
	bus events.Bus
}

func NewVisitHandler(db *gorm.DB, bus events.Bus) *VisitHandler {
	return &VisitHandler{db: db, bus: bus}
}

type TrackRequest struct {
	PageID string `json:"page_id"`
	Source string `json:"source"`
}

// Track records a page visit from the public site. Tracking is
// fire-and-forget: a storage failure is logged but never surfaced, a
// broken pixel must not break the page.
func (h *VisitHandler) Track(c *gin.Context) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_id is required"})
		return
	}

	source := req.Source
	if source == "" {
		source = analytics.DeriveSource(c.Request.Referer())
	}

	visit := models.PageVisit{
		PageID: req.PageID,
		Source: &source,
	}
	if ua := c.Request.UserAgent(); ua != "" {
		visit.UserAgent = &ua
	}
	if ip := c.ClientIP(); ip != "" {
		visit.IPAddress = &ip
	}

	if err := h.db.Create(&visit).Error; err != nil {
		logrus.WithError(err).Warn("Failed to record page visit")
		c.JSON(http.StatusOK, gin.H{"tracked": false})
		return
	}

	if event, err := events.NewInsertEvent(events.TablePageVisits, visit); err == nil {
		if err := h.bus.Publish(c.Request.Context(), event); err != nil {
			logrus.WithError(err).Warn("Failed to publish visit event")
		}
	}

	c.JSON(http.StatusOK, gin.H{"tracked": true})
}
