package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPayloadDefaults(t *testing.T) {
	b := Backend{ID: BackendOpenRouter, Model: "gpt-4o-mini"}
	req := ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}}

	got := buildPayload(b, req, chatParams)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Equal(t, 0.7, got["temperature"])
	assert.Equal(t, 512, got["max_tokens"])
	assert.Equal(t, req.Messages, got["messages"])
}

func TestBuildPayloadClientOverrides(t *testing.T) {
	b := Backend{ID: BackendOpenAI, Model: "gpt-4o-mini"}
	temp := 0.1
	maxTokens := 64
	req := ChatRequest{
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		Model:       "gpt-4o",
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	}

	got := buildPayload(b, req, chatParams)

	assert.Equal(t, "gpt-4o", got["model"])
	assert.Equal(t, 0.1, got["temperature"])
	assert.Equal(t, 64, got["max_tokens"])
}

func TestBuildPayloadTitleDefaults(t *testing.T) {
	b := Backend{ID: BackendOpenRouter, Model: "gpt-4o-mini"}
	req := ChatRequest{Messages: []Message{{Role: RoleUser, Content: "hi"}}}

	got := buildPayload(b, req, titleParams)

	assert.Equal(t, 0.3, got["temperature"])
	assert.Equal(t, 24, got["max_tokens"])
}

func TestBuildPayloadDoesNotMutateConversation(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "be nice"},
		{Role: RoleUser, Content: "hi"},
	}
	req := ChatRequest{Messages: messages}

	buildPayload(Backend{Model: "m"}, req, chatParams)

	assert.Equal(t, Message{Role: RoleSystem, Content: "be nice"}, messages[0])
	assert.Equal(t, Message{Role: RoleUser, Content: "hi"}, messages[1])
	assert.Len(t, messages, 2)
}
