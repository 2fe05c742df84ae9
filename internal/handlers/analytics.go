package handlers

import (
	"net/http"
	"time"

	"launchsite-backend/internal/analytics"
	"launchsite-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AnalyticsHandler struct {
	db *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

type AnalyticsResponse struct {
	TotalVisits int                     `json:"total_visits"`
	DailyVisits []analytics.DailyVisits `json:"daily_visits"`
	Sources     []analytics.SourceStats `json:"sources"`
}

// Overview aggregates the trailing 30-day visit window. Everything is
// recomputed from the raw rows on each call.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	var visits []models.PageVisit
	since := analytics.WindowStart(time.Now())
	if err := h.db.Where("visit_time >= ?", since).Find(&visits).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch page visits")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בטעינת הנתונים"})
		return
	}

	c.JSON(http.StatusOK, AnalyticsResponse{
		TotalVisits: len(visits),
		DailyVisits: analytics.DailyBuckets(visits),
		Sources:     analytics.SourceBuckets(visits),
	})
}
