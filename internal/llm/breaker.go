package llm

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

// Circuit breaker settings. A backend that has failed several times in a row
// is skipped without a network call until the timeout elapses.
const (
	breakerMaxFailures uint32 = 5
	breakerTimeout            = 30 * time.Second
	breakerInterval           = 60 * time.Second
)

// newBreaker builds the per-backend circuit breaker. An open breaker makes
// the attempt fail immediately without a network call; the fallback loop
// treats that like any other provider failure.
func newBreaker(id string) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "backend:" + id,
		MaxRequests: 1, // one probe when half-open
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(log.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
				"event":   "breaker_state_change",
			}).Warn("Circuit breaker state change")
		},
	})
}
