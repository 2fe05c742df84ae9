package handlers

import (
	"net/http"
	"strconv"

	"launchsite-backend/internal/events"
	"launchsite-backend/internal/models"
	"launchsite-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LeadHandler struct {
	db  *gorm.DB
	bus events.Bus
}

func NewLeadHandler(db *gorm.DB, bus events.Bus) *LeadHandler {
	return &LeadHandler{db: db, bus: bus}
}

type SubmitLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Package string `json:"package"`
}

type LeadListResponse struct {
	Forms []models.ContactForm `json:"forms"`
	Stats models.Statistics    `json:"stats"`
}

type UpdateLeadStatusRequest struct {
	Status *string `json:"status"`
}

// Submit handles the public contact form. Validation happens entirely
// before the store is touched; a rejected field never produces a row.
func (h *LeadHandler) Submit(c *gin.Context) {
	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	if field, msg := validateLead(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg, "field": field})
		return
	}

	if req.Package != models.PackagePremium {
		req.Package = models.PackageBasic
	}

	// Status is deliberately left nil: a fresh inquiry is "new".
	form := models.ContactForm{
		FullName:      utils.SanitizeInput(req.Name),
		Email:         utils.SanitizeInput(req.Email),
		Phone:         utils.SanitizeInput(req.Phone),
		PackageChoice: req.Package,
	}

	if err := h.db.Create(&form).Error; err != nil {
		logrus.WithError(err).Error("Failed to create contact form")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשליחת הטופס. אנא נסו שוב מאוחר יותר."})
		return
	}

	h.publishInsert(c, form)

	c.JSON(http.StatusCreated, gin.H{"message": "תודה על פנייתך! נחזור אליך בהקדם.", "id": form.ID})
}

func validateLead(req *SubmitLeadRequest) (string, string) {
	if isBlank(req.Name) {
		return "name", "שם מלא הוא שדה חובה"
	}
	if isBlank(req.Email) {
		return "email", "אימייל הוא שדה חובה"
	}
	if !utils.IsValidEmail(req.Email) {
		return "email", "כתובת אימייל לא תקינה"
	}
	if isBlank(req.Phone) {
		return "phone", "מספר טלפון הוא שדה חובה"
	}
	if !utils.IsValidPhone(req.Phone) {
		return "phone", "מספר טלפון לא תקין"
	}
	return "", ""
}

func (h *LeadHandler) publishInsert(c *gin.Context, form models.ContactForm) {
	event, err := events.NewInsertEvent(events.TableContactForms, form)
	if err != nil {
		logrus.WithError(err).Warn("Failed to build lead insert event")
		return
	}
	if err := h.bus.Publish(c.Request.Context(), event); err != nil {
		logrus.WithError(err).Warn("Failed to publish lead insert event")
	}
}

// List returns the full lead set ordered newest first, with statistics
// recomputed from that set. Search, sort and pagination stay client
// side at this scale.
func (h *LeadHandler) List(c *gin.Context) {
	var forms []models.ContactForm
	if err := h.db.Order("created_at DESC").Find(&forms).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch contact forms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בטעינת הנתונים"})
		return
	}

	c.JSON(http.StatusOK, LeadListResponse{
		Forms: forms,
		Stats: models.CalculateStatistics(forms),
	})
}

// UpdateStatus sets one of the three handled statuses or clears back
// to "new" when the body carries null.
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "מזהה פנייה לא תקין"})
		return
	}

	var req UpdateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	if !models.IsValidLeadStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "סטטוס לא תקין"})
		return
	}

	result := h.db.Model(&models.ContactForm{}).Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to update lead status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בעדכון הסטטוס"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "הפנייה לא נמצאה"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "הסטטוס עודכן בהצלחה"})
}

func (h *LeadHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "מזהה פנייה לא תקין"})
		return
	}

	result := h.db.Delete(&models.ContactForm{}, id)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to delete contact form")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה במחיקת הפנייה"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "הפנייה לא נמצאה"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "הפנייה נמחקה בהצלחה"})
}
