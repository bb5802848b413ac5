// Package metrics records per-operation call counts and latencies.
package metrics

import "time"

// Result labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// NoopRecorder is a no-op implementation of Recorder
type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
