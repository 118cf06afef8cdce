package llm

// callParams carries the sampling defaults for one kind of call. Chat replies
// get room to ramble; titles are kept short and deterministic.
type callParams struct {
	temperature float64
	maxTokens   int
}

var (
	chatParams  = callParams{temperature: 0.7, maxTokens: 512}
	titleParams = callParams{temperature: 0.3, maxTokens: 24}
)

// buildPayload converts a normalized request into the wire payload the
// OpenAI-compatible endpoints expect. Model resolution: client override wins,
// then the descriptor's model (which already reflects any environment
// override), which always carries a provider default.
//
// The input conversation is referenced, never copied or mutated. Callers
// guarantee it is non-empty.
func buildPayload(b Backend, req ChatRequest, p callParams) map[string]any {
	model := b.Model
	if req.Model != "" {
		model = req.Model
	}

	temperature := p.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	maxTokens := p.maxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	return map[string]any{
		"model":       model,
		"messages":    req.Messages,
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}
}
