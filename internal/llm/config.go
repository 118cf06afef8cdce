package llm

import (
	"os"
	"time"

	"makala-gateway/pkg/utils"
)

// defaultSystemPrompt is injected ahead of the client conversation when the
// client supplies no system message of its own.
const defaultSystemPrompt = "You speak casual internet slang. Use lowercase, playful tone, use 'lol', 'fr', 'so', ignore strict grammar and punctuation, and keep replies short (1-3 sentences). Be friendly and informal."

// Config holds everything the gateway reads from the environment. It is
// built once at process start and treated as immutable afterwards.
type Config struct {
	// Port is the HTTP listen port.
	Port string
	// SystemPrompt is the preamble injected into chat conversations that
	// lack a system message.
	SystemPrompt string
	// UpstreamTimeout bounds each individual backend attempt.
	UpstreamTimeout time.Duration
	// RateLimitRPM is the per-IP request budget per minute on /api routes.
	RateLimitRPM int
	// StaticDir, when set, is served for routes the API does not claim.
	StaticDir string
	// Backends is the ordered descriptor set; earlier entries are preferred.
	// Built once at startup and never reordered at runtime.
	Backends []Backend
}

// LoadConfig reads the environment and assembles the ordered backend
// descriptor set. OpenRouter is the primary (preferred routing layer);
// OpenAI is the fallback. A backend is usable only when its credential is
// present, so with no keys configured the set is empty and every completion
// request fails fast with a configuration error.
//
// Recognized variables:
//   - OPENROUTER_API_KEY, OPENAI_API_KEY: backend credentials
//   - OPENROUTER_MODEL, OPENAI_MODEL: per-backend model override
//   - PORT: listen port (default 3000)
//   - SYSTEM_PROMPT: chat preamble override
//   - UPSTREAM_TIMEOUT: seconds per backend attempt (default 30)
//   - RATE_LIMIT_RPM: per-IP requests per minute (default 20)
//   - STATIC_DIR: optional directory of static assets
func LoadConfig() *Config {
	cfg := &Config{
		Port:            utils.GetEnvWithDefault("PORT", "3000"),
		SystemPrompt:    utils.GetEnvWithDefault("SYSTEM_PROMPT", defaultSystemPrompt),
		UpstreamTimeout: time.Duration(utils.GetEnvInt("UPSTREAM_TIMEOUT", 30)) * time.Second,
		RateLimitRPM:    utils.GetEnvInt("RATE_LIMIT_RPM", 20),
		StaticDir:       os.Getenv("STATIC_DIR"),
	}

	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		cfg.Backends = append(cfg.Backends, Backend{
			ID:     BackendOpenRouter,
			URL:    OpenRouterCompletionURL,
			APIKey: key,
			Model:  utils.GetEnvWithDefault("OPENROUTER_MODEL", defaultModel),
		})
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Backends = append(cfg.Backends, Backend{
			ID:     BackendOpenAI,
			URL:    OpenAICompletionURL,
			APIKey: key,
			Model:  utils.GetEnvWithDefault("OPENAI_MODEL", defaultModel),
		})
	}

	return cfg
}
