// Package metrics implements engine.Metrics with Prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements engine.Metrics, exposing per-node decision counts,
// status code counts, bytes served, and range-request counts.
type Collector struct {
	decisions     *prometheus.CounterVec
	statuses      *prometheus.CounterVec
	bytesOut      prometheus.Counter
	rangeRequests *prometheus.CounterVec
}

// NewCollector builds a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webmachine_decisions_total",
			Help: "Decision graph node visits by node and outcome.",
		}, []string{"node", "outcome"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webmachine_responses_total",
			Help: "Responses by status code.",
		}, []string{"status"}),
		bytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "webmachine_response_bytes_total",
			Help: "Total response body bytes written.",
		}),
		rangeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webmachine_range_requests_total",
			Help: "Range requests served, by single/multipart.",
		}, []string{"multipart"}),
	}
	reg.MustRegister(c.decisions, c.statuses, c.bytesOut, c.rangeRequests)
	return c
}

func (c *Collector) ObserveDecision(node, outcome string) {
	c.decisions.WithLabelValues(node, outcome).Inc()
}

func (c *Collector) ObserveStatus(code int) {
	c.statuses.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (c *Collector) ObserveBytesOut(n int64) {
	c.bytesOut.Add(float64(n))
}

func (c *Collector) ObserveRangeRequest(multipart bool) {
	c.rangeRequests.WithLabelValues(strconv.FormatBool(multipart)).Inc()
}
