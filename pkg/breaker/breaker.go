package breaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// New trips after at least three requests with a failure ratio of 60% or more and
// probes again after openFor.
func New[T any](name string, openFor time.Duration) *gobreaker.CircuitBreaker[T] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = openFor
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		slog.Default().Warn("circuit_breaker_state_changed", "breaker", name, "from", from.String(), "to", to.String())
	}

	return gobreaker.NewCircuitBreaker[T](st)
}
