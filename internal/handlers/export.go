package handlers

import (
	"fmt"
	"net/http"
	"time"

	"launchsite-backend/internal/export"
	"launchsite-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ExportHandler struct {
	db *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

func (h *ExportHandler) sendDownload(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

// Leads exports the lead table as CSV, honoring the same search filter
// the dashboard table applies.
func (h *ExportHandler) Leads(c *gin.Context) {
	var forms []models.ContactForm
	if err := h.db.Order("created_at DESC").Find(&forms).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch contact forms for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בייצוא הנתונים"})
		return
	}

	forms = models.FilterLeads(forms, c.Query("search"))

	data, err := export.LeadsCSV(forms)
	if err != nil {
		logrus.WithError(err).Error("Failed to render leads CSV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בייצוא הנתונים"})
		return
	}

	h.sendDownload(c, "text/csv; charset=utf-8", export.Filename("leads", "csv", time.Now()), data)
}

// Deals exports the deal table as CSV with the dashboard's filters.
func (h *ExportHandler) Deals(c *gin.Context) {
	var deals []models.Deal
	if err := h.db.Order("created_at DESC").Find(&deals).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch deals for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בייצוא הנתונים"})
		return
	}

	deals = models.FilterDeals(deals, c.Query("search"), c.Query("status"), c.Query("package_type"), c.Query("source"))

	data, err := export.DealsCSV(deals)
	if err != nil {
		logrus.WithError(err).Error("Failed to render deals CSV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בייצוא הנתונים"})
		return
	}

	h.sendDownload(c, "text/csv; charset=utf-8", export.Filename("deals", "csv", time.Now()), data)
}

// Visits exports the raw visit log as CSV.
func (h *ExportHandler) Visits(c *gin.Context) {
	var visits []models.PageVisit
	if err := h.db.Order("visit_time DESC").Find(&visits).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch page visits for export")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בייצוא הנתונים"})
		return
	}

	data, err := export.VisitsCSV(visits)
	if err != nil {
		logrus.WithError(err).Error("Failed to render visits CSV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בייצוא הנתונים"})
		return
	}

	h.sendDownload(c, "text/csv; charset=utf-8", export.Filename("analytics", "csv", time.Now()), data)
}

// Backup snapshots the full lead set as timestamped JSON.
func (h *ExportHandler) Backup(c *gin.Context) {
	var forms []models.ContactForm
	if err := h.db.Order("created_at DESC").Find(&forms).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch contact forms for backup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה ביצירת הגיבוי"})
		return
	}

	now := time.Now()
	data, err := export.BackupJSON(forms, now)
	if err != nil {
		logrus.WithError(err).Error("Failed to render backup JSON")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה ביצירת הגיבוי"})
		return
	}

	h.sendDownload(c, "application/json", export.Filename("launchsite-backup", "json", now), data)
}
