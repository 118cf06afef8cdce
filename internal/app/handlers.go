package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"makala-gateway/internal/llm"
)

// chatPayload is the inbound body for /api/chat. The legacy single-message
// shape ({"message": "..."}) predates the conversation shape and is still
// accepted; it becomes a one-turn user conversation.
type chatPayload struct {
	Messages    []llm.Message `json:"messages"`
	Message     string        `json:"message"`
	Model       string        `json:"model"`
	Temperature *float64      `json:"temperature"`
	MaxTokens   *int          `json:"max_tokens"`
}

// titlePayload is the inbound body for /api/title: a conversation to
// summarize, or bare text.
type titlePayload struct {
	Messages []llm.Message `json:"messages"`
	Text     string        `json:"text"`
}

func (a *App) handleChat(c *gin.Context) {
	var payload chatPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	messages := payload.Messages
	if len(messages) == 0 && payload.Message != "" {
		messages = []llm.Message{{Role: llm.RoleUser, Content: payload.Message}}
	}
	if err := validateMessages(messages); err != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	res, err := a.service.Complete(c.Request.Context(), llm.ChatRequest{
		Messages:    messages,
		Model:       payload.Model,
		Temperature: payload.Temperature,
		MaxTokens:   payload.MaxTokens,
	})
	if err != nil {
		a.writeError(c, err)
		return
	}

	body := gin.H{"reply": res.Reply}
	// Raw may be non-JSON when the upstream answered 2xx with plain text;
	// embedding it verbatim would corrupt the response envelope.
	if json.Valid(res.Raw) {
		body["raw"] = json.RawMessage(res.Raw)
	}
	c.JSON(http.StatusOK, body)
}

func (a *App) handleTitle(c *gin.Context) {
	var payload titlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if len(payload.Messages) > 0 {
		if msg := validateMessages(payload.Messages); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
	}

	title, err := a.service.Title(c.Request.Context(), payload.Messages, payload.Text)
	if err != nil {
		a.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"title": title})
}

func (a *App) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validateMessages returns a client-facing message for invalid input, or ""
// when the conversation is acceptable.
func validateMessages(messages []llm.Message) string {
	if len(messages) == 0 {
		return "missing messages"
	}
	for i, m := range messages {
		if !m.Role.Valid() {
			return "invalid role in message " + strconv.Itoa(i)
		}
		if m.Content == "" {
			return "empty content in message " + strconv.Itoa(i)
		}
	}
	return ""
}

// writeError maps a completion failure onto the HTTP surface. Provider-level
// detail is forwarded for exhausted upstreams to aid diagnosis; internal
// failures get a generic body and a full server-side log line.
func (a *App) writeError(c *gin.Context, err error) {
	requestID := c.GetString(ContextRequestID)

	var lerr *llm.Error
	if errors.As(err, &lerr) {
		switch lerr.Kind {
		case llm.ErrKindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": lerr.Detail})
			return
		case llm.ErrKindConfiguration:
			log.WithFields(log.Fields{"request_id": requestID, "event": "config_error"}).
				Error("No backend configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": lerr.Detail})
			return
		case llm.ErrKindExhausted:
			log.WithFields(log.Fields{"request_id": requestID, "detail": lerr.Detail, "event": "exhausted"}).
				Error("All backends failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "all backends failed", "detail": lerr.Detail})
			return
		}
	}

	log.WithFields(log.Fields{"request_id": requestID, "error": err.Error(), "event": "internal_error"}).
		Error("Unexpected pipeline failure")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
