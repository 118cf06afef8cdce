package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "first line only, trailing punctuation enforced",
			reply: "A Fun Chat About Cats.\nExtra line",
			want:  "A Fun Chat About Cats",
		},
		{
			name:  "whitespace trimmed",
			reply: "   Weekend Plans   ",
			want:  "Weekend Plans",
		},
		{
			name:  "surrounding quotes dropped",
			reply: `"Cooking Tips"`,
			want:  "Cooking Tips",
		},
		{
			name:  "smart quotes dropped",
			reply: "“Travel Ideas”",
			want:  "Travel Ideas",
		},
		{
			name:  "word cap applied",
			reply: "One Two Three Four Five Six Seven Eight",
			want:  "One Two Three Four Five Six",
		},
		{
			name:  "question mark stripped",
			reply: "What About Lunch?",
			want:  "What About Lunch",
		},
		{
			name:  "ellipsis stripped",
			reply: "Thinking Out Loud…",
			want:  "Thinking Out Loud",
		},
		{
			name:  "empty reply",
			reply: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			reply: "...",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.reply))
		})
	}
}

func TestNormalizeTitleRuneCap(t *testing.T) {
	long := strings.Repeat("Waybeyondanyreasonablelength ", 3)
	got := NormalizeTitle(long)
	assert.LessOrEqual(t, len([]rune(got)), titleMaxRunes)
}

func TestTitleFromText(t *testing.T) {
	var seen []Message
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages  []Message `json:"messages"`
			MaxTokens int       `json:"max_tokens"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		seen = payload.Messages
		assert.Equal(t, titleParams.maxTokens, payload.MaxTokens)
		w.Write([]byte(chatBody("A Fun Chat About Cats.\nignored")))
	}))
	defer ts.Close()

	s := newTestService(t, testBackend(BackendOpenRouter, ts.URL))
	title, err := s.Title(context.Background(), nil, "tell me about cats")

	require.NoError(t, err)
	assert.Equal(t, "A Fun Chat About Cats", title)
	require.Len(t, seen, 2)
	assert.Equal(t, RoleSystem, seen[0].Role)
	assert.Equal(t, titleInstruction, seen[0].Content)
	assert.Equal(t, Message{Role: RoleUser, Content: "tell me about cats"}, seen[1])
}

func TestTitleUsesConversationTail(t *testing.T) {
	var seen []Message
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		seen = payload.Messages
		w.Write([]byte(chatBody("Long Running Chat")))
	}))
	defer ts.Close()

	conversation := make([]Message, 0, 6)
	for _, c := range []string{"one", "two", "three", "four", "five", "six"} {
		conversation = append(conversation, Message{Role: RoleUser, Content: c})
	}

	s := newTestService(t, testBackend(BackendOpenRouter, ts.URL))
	title, err := s.Title(context.Background(), conversation, "")

	require.NoError(t, err)
	assert.Equal(t, "Long Running Chat", title)
	// System instruction plus the last titleContextTurns messages.
	require.Len(t, seen, titleContextTurns+1)
	assert.Equal(t, "three", seen[1].Content)
	assert.Equal(t, "six", seen[titleContextTurns].Content)
}

func TestTitleNothingToSummarize(t *testing.T) {
	s := newTestService(t, testBackend(BackendOpenRouter, "http://127.0.0.1:1"))

	_, err := s.Title(context.Background(), nil, "")

	assert.Equal(t, ErrKindValidation, KindOf(err))
}

func TestTitleSurfacesCompletionFailure(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer down.Close()

	s := newTestService(t, testBackend(BackendOpenRouter, down.URL))

	_, err := s.Title(context.Background(), nil, "anything")

	assert.Equal(t, ErrKindExhausted, KindOf(err))
}

func TestTitleRejectsUnusableReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatBody("...")))
	}))
	defer ts.Close()

	s := newTestService(t, testBackend(BackendOpenRouter, ts.URL))

	_, err := s.Title(context.Background(), nil, "anything")

	require.Error(t, err)
	assert.Equal(t, ErrKindExhausted, KindOf(err))
}
