// Package metrics provides observability hooks for document rendering.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics can be enabled by swapping in the Prometheus
// implementation without touching call sites.
package metrics

import "time"

// ResultLabel enumerates render outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess    ResultLabel = "success"
	ResultValidation ResultLabel = "validation_error"
	ResultFault      ResultLabel = "render_fault"
)

// Recorder defines observability hooks for the HTTP surface and the render
// pipeline. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveRenderDuration(d time.Duration)
	IncRenderOutcome(outcome ResultLabel)
	ObserveDocumentBytes(n int)
	IncHTTPRequest(method, path string, status int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRenderDuration(time.Duration) {}
func (NoopRecorder) IncRenderOutcome(ResultLabel)        {}
func (NoopRecorder) ObserveDocumentBytes(int)            {}
func (NoopRecorder) IncHTTPRequest(string, string, int)  {}
