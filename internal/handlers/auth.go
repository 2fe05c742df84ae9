package handlers

import (
	"net/http"
	"strings"
	"time"

	"launchsite-backend/internal/config"
	"launchsite-backend/internal/middleware"
	"launchsite-backend/internal/models"
	"launchsite-backend/internal/redis"
	"launchsite-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   *config.Config
}

func NewAuthHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, redis: redisClient, cfg: cfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginMessages = map[string]string{
	"Email":    "כתובת אימייל לא תקינה",
	"Password": "סיסמה היא שדה חובה",
}

// Login verifies admin credentials and opens a redis-backed session.
// Unknown email and wrong password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err, loginMessages)})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var admin models.AdminUser
	if err := h.db.Where("email = ?", email).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "אימייל או סיסמה שגויים"})
		return
	}

	if !utils.VerifyPassword(req.Password, admin.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "אימייל או סיסמה שגויים"})
		return
	}

	token, err := utils.GenerateToken(admin.ID, admin.Email, h.cfg.JWTSecret, h.cfg.JWTExpiry)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בהתחברות"})
		return
	}

	if h.redis != nil {
		sessionKey := middleware.SessionKey(admin.ID)
		ctx := c.Request.Context()
		if err := h.redis.HSet(ctx, sessionKey,
			"email", admin.Email,
			"login_at", time.Now().Format(time.RFC3339),
		); err != nil {
			logrus.WithError(err).Error("Failed to store admin session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בהתחברות"})
			return
		}
		if err := h.redis.Expire(ctx, sessionKey, h.cfg.JWTExpiry); err != nil {
			logrus.WithError(err).Warn("Failed to set session expiry")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "email": admin.Email},
	})
}

// Logout drops the redis session so the token stops working at once.
func (h *AuthHandler) Logout(c *gin.Context) {
	adminID := c.GetUint("admin_id")

	if h.redis != nil {
		if err := h.redis.Del(c.Request.Context(), middleware.SessionKey(adminID)); err != nil {
			logrus.WithError(err).Warn("Failed to delete admin session")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "התנתקת בהצלחה"})
}
