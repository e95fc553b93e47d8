// Package metrics collects request telemetry for the backend transport.
// Collectors live on a private registry so several clients (and tests) can
// coexist in one process.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bizdesk_client"

type Collector struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	authExpired prometheus.Counter
	duration    *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Backend requests by method and response status",
		},
		[]string{"method", "status"},
	)

	c.authExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "auth_expired_total",
			Help:      "Sessions torn down because the backend rejected the token",
		},
	)

	c.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method"},
	)

	c.registry.MustRegister(c.requests, c.authExpired, c.duration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records one finished request. status is the HTTP status
// code, or "error" when no response was received.
func (c *Collector) ObserveRequest(method, status string, d time.Duration) {
	c.requests.WithLabelValues(method, status).Inc()
	c.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (c *Collector) AuthExpired() {
	c.authExpired.Inc()
}

// StatusLabel converts an HTTP status code into a label value.
func StatusLabel(code int) string {
	if code == 0 {
		return "error"
	}
	return strconv.Itoa(code)
}

// WriteSummary prints counters and observation counts as plain lines,
// sorted by name.
func (c *Collector) WriteSummary(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%.3fs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
