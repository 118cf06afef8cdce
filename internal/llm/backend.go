package llm

// Chat completion endpoints for the supported providers.
const (
	OpenRouterCompletionURL = "https://openrouter.ai/api/v1/chat/completions"
	OpenAICompletionURL     = "https://api.openai.com/v1/chat/completions"
)

// Backend identifiers, used in logs, results, and error detail.
const (
	BackendOpenRouter = "openrouter"
	BackendOpenAI     = "openai"
)

// defaultModel is used when neither the environment nor the client names
// one.
const defaultModel = "gpt-4o-mini"

// Backend describes one upstream provider. Descriptors are built once at
// startup and never modified; the same value is read by every request.
type Backend struct {
	// ID is the short stable identifier, e.g. "openrouter".
	ID string
	// URL is the chat completion endpoint.
	URL string
	// APIKey is the bearer credential. It is sent upstream and masked
	// everywhere else.
	APIKey string
	// Model is the resolved default model for this backend.
	Model string
}
