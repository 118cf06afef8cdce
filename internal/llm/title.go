package llm

import (
	"context"
	"strings"
)

// titleInstruction is the fixed system message for title derivation. The
// prompt asks for clean output, but NormalizeTitle enforces the same
// constraints afterwards rather than trusting the model to comply.
const titleInstruction = "Produce a short descriptive title for the conversation: at most 6 words, Title Case, no quotes, no trailing punctuation. Reply with the title only."

const (
	// titleContextTurns is how many trailing messages of the conversation
	// are shown to the model when deriving a title.
	titleContextTurns = 4
	titleMaxWords     = 6
	titleMaxRunes     = 60
)

// Title derives a short label for a conversation. Exactly one of messages or
// text is expected: text wins when both are supplied, mirroring the chat
// endpoint's legacy single-message shape. Failures surface with the same
// error taxonomy Complete uses; there is no title-specific variant.
func (s *Service) Title(ctx context.Context, messages []Message, text string) (string, error) {
	conv := []Message{{Role: RoleSystem, Content: titleInstruction}}
	switch {
	case text != "":
		conv = append(conv, Message{Role: RoleUser, Content: text})
	case len(messages) > 0:
		conv = append(conv, tail(messages, titleContextTurns)...)
	default:
		return "", &Error{Kind: ErrKindValidation, Detail: "nothing to summarize"}
	}

	res, err := s.run(ctx, ChatRequest{Messages: conv}, titleParams)
	if err != nil {
		return "", err
	}

	title := NormalizeTitle(res.Reply)
	if title == "" {
		return "", &Error{Kind: ErrKindExhausted, Detail: "model returned no usable title"}
	}
	return title, nil
}

// tail returns the last n messages of a conversation.
func tail(messages []Message, n int) []Message {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

// NormalizeTitle reduces a model reply to a clean one-line title: first line
// only, surrounding whitespace and quotes dropped, capped at six words and
// sixty runes, trailing punctuation stripped. Pure, so it is testable
// without any network involvement.
func NormalizeTitle(reply string) string {
	line, _, _ := strings.Cut(reply, "\n")
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "\"'“”")

	if words := strings.Fields(line); len(words) > titleMaxWords {
		line = strings.Join(words[:titleMaxWords], " ")
	}

	if runes := []rune(line); len(runes) > titleMaxRunes {
		line = string(runes[:titleMaxRunes])
	}

	line = strings.TrimRight(line, ".,;:!?…")
	return strings.TrimSpace(line)
}
