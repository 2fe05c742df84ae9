package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"launchsite-backend/internal/models"
	"launchsite-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DealHandler struct {
	db *gorm.DB
}

func NewDealHandler(db *gorm.DB) *DealHandler {
	return &DealHandler{db: db}
}

// DealRequest carries the edit form fields. Amount and closing date
// arrive as strings: an empty amount means "no amount", not zero.
type DealRequest struct {
	ClientName    string `json:"client_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Source        string `json:"source"`
	PackageType   string `json:"package_type"`
	AmountPaid    string `json:"amount_paid"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	ClosingDate   string `json:"closing_date"`
	Notes         string `json:"notes"`
}

type DealListResponse struct {
	Deals   []models.Deal      `json:"deals"`
	Summary models.DealSummary `json:"summary"`
}

type UpdateDealStatusRequest struct {
	Status string `json:"status"`
}

func (h *DealHandler) List(c *gin.Context) {
	var deals []models.Deal
	if err := h.db.Order("created_at DESC").Find(&deals).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch deals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בטעינת העסקאות"})
		return
	}

	c.JSON(http.StatusOK, DealListResponse{
		Deals:   deals,
		Summary: models.SummarizeDeals(deals),
	})
}

func (h *DealHandler) Create(c *gin.Context) {
	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	deal, msg := dealFromRequest(&req)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := h.db.Create(deal).Error; err != nil {
		logrus.WithError(err).Error("Failed to create deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשמירת העסקה"})
		return
	}

	c.JSON(http.StatusCreated, deal)
}

// Update replaces all editable fields of an existing deal.
func (h *DealHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var existing models.Deal
	if err := h.db.Where("id = ?", id).First(&existing).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "העסקה לא נמצאה"})
		return
	}

	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	deal, msg := dealFromRequest(&req)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	existing.ClientName = deal.ClientName
	existing.Phone = deal.Phone
	existing.Email = deal.Email
	existing.Source = deal.Source
	existing.PackageType = deal.PackageType
	existing.AmountPaid = deal.AmountPaid
	existing.PaymentMethod = deal.PaymentMethod
	existing.Status = deal.Status
	existing.ClosingDate = deal.ClosingDate
	existing.Notes = deal.Notes

	if err := h.db.Save(&existing).Error; err != nil {
		logrus.WithError(err).Error("Failed to update deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשמירת העסקה"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (h *DealHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateDealStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	if !models.IsValidDealStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "סטטוס לא תקין"})
		return
	}

	result := h.db.Model(&models.Deal{}).Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to update deal status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשמירת העסקה"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "העסקה לא נמצאה"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "הסטטוס עודכן בהצלחה"})
}

// Delete removes a deal. The confirmation step lives in the client;
// reaching this endpoint is the confirmed action.
func (h *DealHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	result := h.db.Where("id = ?", id).Delete(&models.Deal{})
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to delete deal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה במחיקת העסקה"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "העסקה לא נמצאה"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "העסקה נמחקה בהצלחה"})
}

// dealFromRequest validates the form fields in display order and
// builds the deal. The first failing field short-circuits with its
// message and nothing reaches the store.
func dealFromRequest(req *DealRequest) (*models.Deal, string) {
	if isBlank(req.ClientName) {
		return nil, "שם הלקוח הוא שדה חובה"
	}
	if isBlank(req.Phone) {
		return nil, "טלפון הוא שדה חובה"
	}
	if isBlank(req.Email) {
		return nil, "אימייל הוא שדה חובה"
	}
	if req.Source == "" {
		return nil, "מקור הגעה הוא שדה חובה"
	}
	if req.PackageType == "" {
		return nil, "חבילה היא שדה חובה"
	}
	if req.Status == "" {
		return nil, "סטטוס הוא שדה חובה"
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		return nil, "כתובת אימייל לא תקינה"
	}
	if !utils.IsValidPhone(req.Phone) {
		return nil, "מספר טלפון לא תקין"
	}
	if !models.IsValidDealSource(req.Source) {
		return nil, "מקור הגעה לא תקין"
	}
	if !models.IsValidDealPackage(req.PackageType) {
		return nil, "חבילה לא תקינה"
	}
	if !models.IsValidDealStatus(req.Status) {
		return nil, "סטטוס לא תקין"
	}

	deal := &models.Deal{
		ClientName:  strings.TrimSpace(req.ClientName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       email,
		Source:      req.Source,
		PackageType: req.PackageType,
		Status:      req.Status,
	}

	if amount := strings.TrimSpace(req.AmountPaid); amount != "" {
		parsed, err := strconv.ParseFloat(amount, 64)
		if err != nil || parsed < 0 {
			return nil, "סכום ששולם לא תקין"
		}
		deal.AmountPaid = &parsed
	}

	if req.PaymentMethod != "" {
		if !models.IsValidPaymentMethod(&req.PaymentMethod) {
			return nil, "אמצעי תשלום לא תקין"
		}
		deal.PaymentMethod = &req.PaymentMethod
	}

	if req.ClosingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ClosingDate)
		if err != nil {
			return nil, "תאריך סגירה לא תקין"
		}
		deal.ClosingDate = &parsed
	}

	if notes := strings.TrimSpace(req.Notes); notes != "" {
		deal.Notes = &notes
	}

	return deal, ""
}
