package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"launchsite-backend/internal/chat"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatRouter(client *chat.Client) *gin.Engine {
	h := NewChatHandler(client)
	router := gin.New()
	router.POST("/chat", h.Message)
	return router
}

func TestChatPortfolioShortCircuit(t *testing.T) {
	// No upstream server: the canned reply must never reach the API.
	router := chatRouter(chat.NewClient("", "http://127.0.0.1:1", "gpt-3.5-turbo"))

	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{"message": "יש לכם דוגמאות לדפים?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reply string `json:"reply"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, chat.PortfolioReply, resp.Reply)
}

func TestChatRequiresMessage(t *testing.T) {
	router := chatRouter(chat.NewClient("", "http://127.0.0.1:1", "gpt-3.5-turbo"))

	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{"message": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "נדרשת הודעה", resp.Error)
}

func TestChatQuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	router := chatRouter(chat.NewClient("key", server.URL, "gpt-3.5-turbo"))

	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{"message": "כמה עולה דף נחיתה?"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "חריגה ממכסת הבקשות, אנא נסה שוב בעוד מספר דקות", resp.Error)
}

func TestChatForwardsReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "בשמחה! מה העסק שלך?"}},
			},
		})
	}))
	defer server.Close()

	router := chatRouter(chat.NewClient("key", server.URL, "gpt-3.5-turbo"))

	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{"message": "כמה עולה דף נחיתה?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reply string `json:"reply"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "בשמחה! מה העסק שלך?", resp.Reply)
}
