package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

// Service drives completion requests through the configured backends. All
// fields are set at construction and read-only afterwards, so a single
// Service is shared by every concurrent request.
type Service struct {
	backends     []Backend
	client       *http.Client
	breakers     map[string]*gobreaker.CircuitBreaker[[]byte]
	timeout      time.Duration
	systemPrompt string
}

// NewService builds a Service from the loaded configuration. The HTTP client
// uses a pooled transport tuned for the usual LLM API pattern: few hosts,
// long-lived connections. The overall client timeout is left to the
// per-attempt context.
func NewService(cfg *Config) *Service {
	backends := cfg.Backends
	breakers := make(map[string]*gobreaker.CircuitBreaker[[]byte], len(backends))
	for _, b := range backends {
		breakers[b.ID] = newBreaker(b.ID)
	}

	timeout := cfg.UpstreamTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Service{
		backends: backends,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     120 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		breakers:     breakers,
		timeout:      timeout,
		systemPrompt: cfg.SystemPrompt,
	}
}

// Complete runs one chat completion. The configured system prompt is
// prepended when the client conversation has no system message of its own.
//
// Validation and configuration failures return before any network activity.
// Otherwise backends are attempted strictly in order, one at a time: a
// transport error, a non-2xx status, or an empty extraction advances to the
// next backend, and a success returns immediately so no duplicate billable
// call is ever issued. When every backend has failed the returned error has
// kind ErrKindExhausted and carries the last attempt's detail.
func (s *Service) Complete(ctx context.Context, req ChatRequest) (*Result, error) {
	req.Messages = s.withPreamble(req.Messages)
	return s.run(ctx, req, chatParams)
}

// withPreamble returns the conversation with the configured system prompt
// prepended, unless the client already leads with a system message. The
// input slice is never modified.
func (s *Service) withPreamble(messages []Message) []Message {
	if s.systemPrompt == "" || len(messages) == 0 {
		return messages
	}
	if messages[0].Role == RoleSystem {
		return messages
	}
	out := make([]Message, 0, len(messages)+1)
	out = append(out, Message{Role: RoleSystem, Content: s.systemPrompt})
	return append(out, messages...)
}

func (s *Service) run(ctx context.Context, req ChatRequest, p callParams) (*Result, error) {
	if len(req.Messages) == 0 {
		return nil, &Error{Kind: ErrKindValidation, Detail: "conversation is empty"}
	}
	if len(s.backends) == 0 {
		return nil, &Error{Kind: ErrKindConfiguration, Detail: "no backend credentials configured"}
	}

	var lastDetail string
	for i, b := range s.backends {
		attempt := i + 1
		start := time.Now()

		raw, err := s.attempt(ctx, b, req, p)
		if err != nil {
			if KindOf(err) == ErrKindInternal {
				return nil, err
			}
			lastDetail = err.Error()
			log.WithFields(log.Fields{
				"backend":    b.ID,
				"attempt":    attempt,
				"latency_ms": time.Since(start).Milliseconds(),
				"error":      lastDetail,
				"event":      "attempt_failed",
			}).Warn("Backend attempt failed")
			continue
		}

		reply := ExtractReply(raw)
		if reply == "" {
			lastDetail = fmt.Sprintf("%s returned no extractable reply", b.ID)
			log.WithFields(log.Fields{
				"backend": b.ID,
				"attempt": attempt,
				"event":   "empty_extraction",
			}).Warn("Backend response had no extractable reply")
			continue
		}

		log.WithFields(log.Fields{
			"backend":    b.ID,
			"attempt":    attempt,
			"latency_ms": time.Since(start).Milliseconds(),
			"event":      "attempt_succeeded",
		}).Info("Backend attempt succeeded")

		return &Result{Reply: reply, Raw: raw, Backend: b.ID, Attempts: attempt}, nil
	}

	return nil, &Error{Kind: ErrKindExhausted, Detail: lastDetail}
}

// attempt runs one backend call through that backend's circuit breaker.
func (s *Service) attempt(ctx context.Context, b Backend, req ChatRequest, p callParams) ([]byte, error) {
	raw, err := s.breakers[b.ID].Execute(func() ([]byte, error) {
		return s.post(ctx, b, req, p)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, &Error{Kind: ErrKindProvider, Detail: b.ID + " circuit open", Err: err}
	}
	return raw, err
}

// post performs the single outbound HTTP call for one attempt. Non-2xx
// responses become provider errors with the (truncated) body as detail; the
// credential never appears in any error or log.
func (s *Service) post(ctx context.Context, b Backend, req ChatRequest, p callParams) ([]byte, error) {
	body, err := json.Marshal(buildPayload(b, req, p))
	if err != nil {
		return nil, &Error{Kind: ErrKindInternal, Detail: "failed to encode payload", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: ErrKindInternal, Detail: "failed to build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+b.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: ErrKindProvider, Detail: b.ID + ": " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: ErrKindProvider, Detail: b.ID + ": reading response: " + err.Error(), Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{
			Kind:   ErrKindProvider,
			Detail: fmt.Sprintf("%s returned %d: %s", b.ID, resp.StatusCode, truncate(string(raw))),
		}
	}

	return raw, nil
}
