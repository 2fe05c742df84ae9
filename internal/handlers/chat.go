package handlers

import (
	"errors"
	"net/http"

	"launchsite-backend/internal/chat"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	client *chat.Client
}

func NewChatHandler(client *chat.Client) *ChatHandler {
	return &ChatHandler{client: client}
}

type ChatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history"`
}

// Message answers a chat widget turn. Portfolio questions get the
// canned reply without an upstream call.
func (h *ChatHandler) Message(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || isBlank(req.Message) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "נדרשת הודעה"})
		return
	}

	if chat.IsAskingForExamples(req.Message) {
		c.JSON(http.StatusOK, gin.H{"reply": chat.PortfolioReply})
		return
	}

	reply, err := h.client.Complete(c.Request.Context(), req.Message, req.History)
	if err != nil {
		if errors.Is(err, chat.ErrQuotaExceeded) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "חריגה ממכסת הבקשות, אנא נסה שוב בעוד מספר דקות"})
			return
		}
		logrus.WithError(err).Error("Chat completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "אירעה שגיאה בעיבוד הבקשה"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
