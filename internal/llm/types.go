package llm

import "encoding/json"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one the upstream APIs accept.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a normalized completion request. Model and the sampling
// fields are optional client overrides; nil means "use the defaults".
type ChatRequest struct {
	Messages    []Message
	Model       string
	Temperature *float64
	MaxTokens   *int
}

// Result is a successful completion. Raw carries the winning backend's
// response body untouched, for clients that want more than the extracted
// reply.
type Result struct {
	Reply    string
	Raw      json.RawMessage
	Backend  string
	Attempts int
}
