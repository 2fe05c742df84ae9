// Package chat backs the site's chat widget. Portfolio-style questions
// are answered from a fixed keyword list without touching the language
// model; everything else goes to an OpenAI-compatible completion API.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrQuotaExceeded maps the upstream 429 so the handler can surface
// the dedicated quota message.
var ErrQuotaExceeded = errors.New("chat: quota exceeded")

// portfolioKeywords short-circuit the completion call for "show me
// examples" style questions.
var portfolioKeywords = []string{
	"דוגמאות",
	"דוגמה",
	"דוגמא",
	"דוגמות",
	"עמודים לדוגמה",
	"דפים לדוגמה",
	"איך נראה",
	"לראות דף",
	"לראות דוגמה",
	"עבודות",
	"פורטפוליו",
	"תיק עבודות",
}

// PortfolioReply is the canned response with the portfolio link.
const PortfolioReply = `בטח! הנה קישור לכמה דפי נחיתה לדוגמה שאנחנו מציעים:
https://launchsitex.netlify.app/#portfolio

אפשר לראות שם מגוון דוגמאות מתחומים שונים כמו מסעדות, עורכי דין, סטודיו ליוגה ועוד.

איזה תחום מעניין אותך במיוחד? אשמח להמליץ על דוגמה ספציפית שמתאימה לעסק שלך.`

const systemPrompt = `אתה יועץ מקצועי ואישי ב-LaunchSite. אתה מדבר בגוף ראשון ובטון חברותי אך מקצועי. השם שלך הוא דניאל.
אנחנו מתמחים בדפי נחיתה בלבד: Basic Landing (₪1,190 + ₪250 חודשי) ו-Premium Landing (₪1,990 + ₪450 חודשי), זמן הקמה 5-7 ימי עסקים, תמיכה 24/7.
אם הלקוח מבקש לדבר עם נציג, מסור את המספר 050-6532827. תמיד סיים עם שאלה שמזמינה המשך שיחה.`

// IsAskingForExamples reports whether the message matches the
// portfolio keyword list.
func IsAskingForExamples(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range portfolioKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, apiURL, model string) *Client {
	return &Client{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Complete sends the message plus prior turns to the completion API
// and returns the assistant reply.
func (c *Client) Complete(ctx context.Context, message string, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned status %d: %s", resp.StatusCode, respBody)
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if completion.Error != nil {
		return "", fmt.Errorf("chat completion error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
