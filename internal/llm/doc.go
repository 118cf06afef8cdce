/*
Package llm implements the provider-abstraction core of the gateway.

# Architecture Overview

The package is layered, leaves first:

1. Backend Descriptors (backend.go, config.go)
  - Describe one upstream provider: endpoint, credential, default model
  - Built once from the environment in a fixed priority order
  - OpenRouter is primary, OpenAI the fallback

2. Payload Builder (payload.go)
  - Converts a normalized request into the OpenAI-compatible wire payload
  - Resolves the model: client override, then environment, then default
  - Applies sampling defaults that differ between chat and title calls

3. Response Normalizer (extract.go)
  - Extracts plain reply text from heterogeneous upstream shapes
  - Total and pure: unrecognized shapes degrade to a truncated serialization
  - An empty result signals extraction failure to the fallback loop

4. Completion Service (service.go, breaker.go)
  - Validates input, then attempts backends strictly in order
  - One attempt per backend, never concurrent, never retried in place
  - Each backend sits behind its own circuit breaker
  - Classifies every outcome into a kind-tagged error or a Result

5. Title Deriver (title.go)
  - Reuses the completion pipeline with a fixed system instruction
  - Post-processes the reply into a clean one-line title

# Request Flow

An HTTP handler builds a ChatRequest and calls Service.Complete. The service
prepends the configured system prompt when needed, walks the backend list,
POSTs the built payload with a per-attempt timeout, and hands any 2xx body to
ExtractReply. A transport error, non-2xx status, open breaker, or empty
extraction advances to the next backend; exhaustion surfaces as a single
kind-tagged error the HTTP layer maps to a status code.
*/
package llm
