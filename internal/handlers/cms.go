package handlers

import (
	"net/http"
	"strings"

	"launchsite-backend/internal/config"
	"launchsite-backend/internal/models"
	"launchsite-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CMSHandler struct {
	db      *gorm.DB
	storage *services.StorageService
	cfg     *config.Config
}

func NewCMSHandler(db *gorm.DB, storage *services.StorageService, cfg *config.Config) *CMSHandler {
	return &CMSHandler{db: db, storage: storage, cfg: cfg}
}

type ContentBundle struct {
	Content    []models.SiteContent    `json:"content"`
	Media      []models.SiteMedia      `json:"media"`
	Sections   []models.SiteSection    `json:"sections"`
	Navigation []models.SiteNavigation `json:"navigation"`
	Settings   []models.SiteSetting    `json:"settings"`
}

// GetBundle returns everything the public site needs to render in one
// round trip.
func (h *CMSHandler) GetBundle(c *gin.Context) {
	var bundle ContentBundle

	err := h.db.Order("section_id").Find(&bundle.Content).Error
	if err == nil {
		err = h.db.Order("created_at").Find(&bundle.Media).Error
	}
	if err == nil {
		err = h.db.Order("display_order").Find(&bundle.Sections).Error
	}
	if err == nil {
		err = h.db.Order("display_order").Find(&bundle.Navigation).Error
	}
	if err == nil {
		err = h.db.Order("setting_key").Find(&bundle.Settings).Error
	}
	if err != nil {
		logrus.WithError(err).Error("Failed to load site content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בטעינת התוכן"})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

type UpdateContentRequest struct {
	SectionID    string `json:"section_id" binding:"required"`
	ContentKey   string `json:"content_key" binding:"required"`
	ContentValue string `json:"content_value"`
	ContentType  string `json:"content_type"`
}

// UpdateContent upserts a single content value keyed by section and key.
func (h *CMSHandler) UpdateContent(c *gin.Context) {
	var req UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	if req.ContentType == "" {
		req.ContentType = "text"
	}

	content := models.SiteContent{
		SectionID:    req.SectionID,
		ContentKey:   req.ContentKey,
		ContentValue: req.ContentValue,
		ContentType:  req.ContentType,
	}

	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section_id"}, {Name: "content_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_value", "content_type", "updated_at"}),
	}).Create(&content).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to update site content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשמירת התוכן"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "התוכן עודכן בהצלחה"})
}

type UpdateSectionRequest struct {
	SectionName   *string `json:"section_name"`
	IsActive      *bool   `json:"is_active"`
	DisplayOrder  *int    `json:"display_order"`
	SectionConfig *string `json:"section_config"`
}

// UpdateSection patches section visibility, order, name or config.
func (h *CMSHandler) UpdateSection(c *gin.Context) {
	key := c.Param("key")

	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	updates := map[string]interface{}{}
	if req.SectionName != nil {
		updates["section_name"] = *req.SectionName
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.SectionConfig != nil {
		updates["section_config"] = *req.SectionConfig
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	result := h.db.Model(&models.SiteSection{}).Where("section_key = ?", key).Updates(updates)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to update site section")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשמירת התוכן"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "הסקשן לא נמצא"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "הסקשן עודכן בהצלחה"})
}

type UpdateNavigationRequest struct {
	Label        *string `json:"label"`
	Href         *string `json:"href"`
	Icon         *string `json:"icon"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// UpdateNavigation patches a navigation entry by its key.
func (h *CMSHandler) UpdateNavigation(c *gin.Context) {
	key := c.Param("key")

	var req UpdateNavigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	updates := map[string]interface{}{}
	if req.Label != nil {
		updates["label"] = *req.Label
	}
	if req.Href != nil {
		updates["href"] = *req.Href
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	result := h.db.Model(&models.SiteNavigation{}).Where("nav_key = ?", key).Updates(updates)
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to update navigation entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשמירת התוכן"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "פריט הניווט לא נמצא"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "הניווט עודכן בהצלחה"})
}

type UpdateSettingRequest struct {
	SettingKey   string  `json:"setting_key" binding:"required"`
	SettingValue string  `json:"setting_value"`
	SettingType  string  `json:"setting_type"`
	Description  *string `json:"description"`
}

// UpdateSetting upserts a site-wide setting by its key.
func (h *CMSHandler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "בקשה לא תקינה"})
		return
	}

	if req.SettingType == "" {
		req.SettingType = "text"
	}

	setting := models.SiteSetting{
		SettingKey:   req.SettingKey,
		SettingValue: req.SettingValue,
		SettingType:  req.SettingType,
		Description:  req.Description,
	}

	err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "setting_type", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to update site setting")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בשמירת התוכן"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ההגדרה עודכנה בהצלחה"})
}

// UploadMedia stores an image for a media slot and upserts the slot
// record with the new URL.
func (h *CMSHandler) UploadMedia(c *gin.Context) {
	mediaKey := c.PostForm("media_key")
	if mediaKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "media_key is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "נדרש קובץ"})
		return
	}

	if fileHeader.Size > h.cfg.MaxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "הקובץ גדול מדי"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	allowed := false
	for _, t := range h.cfg.AllowedImageTypes {
		if strings.EqualFold(contentType, t) {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "סוג הקובץ אינו נתמך"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בהעלאת הקובץ"})
		return
	}
	defer file.Close()

	key := services.MediaObjectKey(mediaKey, fileHeader.Filename)
	fileURL, err := h.storage.UploadFile(c.Request.Context(), file, key, contentType)
	if err != nil {
		logrus.WithError(err).Error("Failed to upload media file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בהעלאת הקובץ"})
		return
	}

	media := models.SiteMedia{
		MediaKey: mediaKey,
		FileName: fileHeader.Filename,
		FileURL:  fileURL,
		FileType: contentType,
		FileSize: fileHeader.Size,
	}
	if alt := c.PostForm("alt_text"); alt != "" {
		media.AltText = &alt
	}
	if section := c.PostForm("section_id"); section != "" {
		media.SectionID = &section
	}

	err = h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "media_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"file_name", "file_url", "file_type", "file_size", "alt_text", "section_id"}),
	}).Create(&media).Error
	if err != nil {
		logrus.WithError(err).Error("Failed to save media record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בהעלאת הקובץ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "הקובץ הועלה בהצלחה", "url": fileURL})
}
