package llm

import (
	"bytes"
	"encoding/json"
)

// extractCap bounds the serialized fallback so a pathological upstream body
// cannot balloon the reply.
const extractCap = 1500

const truncationMarker = "…(truncated)"

// ExtractReply pulls the assistant's text out of an upstream response body.
// Providers and API versions disagree on shape, so the known shapes are
// matched in priority order, first match wins:
//
//  1. the body is itself a JSON string
//  2. a top-level "reply" field (pre-normalized nested gateways)
//  3. choices[0].message.content (chat completions)
//  4. choices[0].text (legacy completions)
//  5. anything else JSON: the re-serialized body, truncated
//  6. not JSON at all: the raw bytes as text, truncated
//
// The function is pure and total: it never fails, and an unrecognized shape
// still yields something inspectable. An empty return is the caller's signal
// that extraction failed.
func ExtractReply(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return truncate(string(trimmed))
	}

	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["reply"].(string); ok {
			return s
		}
		if choices, ok := t["choices"].([]any); ok && len(choices) > 0 {
			if choice, ok := choices[0].(map[string]any); ok {
				if msg, ok := choice["message"].(map[string]any); ok {
					if s, ok := msg["content"].(string); ok {
						return s
					}
				}
				if s, ok := choice["text"].(string); ok {
					return s
				}
			}
		}
	}

	serialized, err := json.Marshal(v)
	if err != nil {
		return truncate(string(trimmed))
	}
	return truncate(string(serialized))
}

func truncate(s string) string {
	if len(s) <= extractCap {
		return s
	}
	return s[:extractCap] + truncationMarker
}
