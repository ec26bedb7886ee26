package engine

// Metrics observes decision-engine and emitter outcomes. A NoopMetrics is
// used unless internal/metrics wires a Prometheus-backed implementation,
// so the engine package itself never imports a metrics client.
type Metrics interface {
	ObserveDecision(node string, outcome string)
	ObserveStatus(code int)
	ObserveBytesOut(n int64)
	ObserveRangeRequest(multipart bool)
}

// NoopMetrics discards every observation.
type NoopMetrics struct{}

func (NoopMetrics) ObserveDecision(string, string)  {}
func (NoopMetrics) ObserveStatus(int)                {}
func (NoopMetrics) ObserveBytesOut(int64)            {}
func (NoopMetrics) ObserveRangeRequest(bool)          {}
