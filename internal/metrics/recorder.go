package metrics

import "time"

// ResultLabel enumerates render result categories for counters.
type ResultLabel string

const (
	ResultWritten   ResultLabel = "written"
	ResultUnchanged ResultLabel = "unchanged"
	ResultFailed    ResultLabel = "failed"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveRenderDuration(target string, d time.Duration)
	IncRenderResult(target string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	SetNavItems(links, groups int)
	SetMissingLinks(n int)
	IncWatchReload()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRenderDuration(string, time.Duration) {}
func (NoopRecorder) IncRenderResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)            {}
func (NoopRecorder) SetNavItems(int, int)                        {}
func (NoopRecorder) SetMissingLinks(int)                         {}
func (NoopRecorder) IncWatchReload()                             {}
