package metrics

import "time"

// ResultLabel enumerates page result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFatal   ResultLabel = "fatal"
)

// Recorder defines observability hooks for page processing and rebuilds.
// Implementations may forward to Prometheus, OpenTelemetry, etc. The
// NoopRecorder satisfies the interface with zero overhead, allowing
// optional injection.
type Recorder interface {
	ObservePageDuration(d time.Duration)
	IncPageResult(result ResultLabel)
	IncDirectiveResolved(kind string)
	IncWarning()
	IncURLFetch(cacheHit bool)
	ObserveRebuildDuration(d time.Duration)
	IncRebuildOutcome(outcome string) // outcome: success|failed
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageDuration(time.Duration)    {}
func (NoopRecorder) IncPageResult(ResultLabel)            {}
func (NoopRecorder) IncDirectiveResolved(string)          {}
func (NoopRecorder) IncWarning()                          {}
func (NoopRecorder) IncURLFetch(bool)                     {}
func (NoopRecorder) ObserveRebuildDuration(time.Duration) {}
func (NoopRecorder) IncRebuildOutcome(string)             {}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
