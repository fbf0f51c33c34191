// Package metrics exposes the API's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	analysesTotal     *prometheus.CounterVec
	analysisDuration  *prometheus.HistogramVec
	anomaliesTotal    *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	chatRepliesTotal  *prometheus.CounterVec
	publishedTotal    *prometheus.CounterVec
}

// New builds the collectors on a private registry, so several instances can
// coexist in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Analyzer runs by domain and outcome.",
		}, []string{"domain", "outcome"}),
		analysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Histogram of analyzer run durations by domain.",
			Buckets: prometheus.DefBuckets,
		}, []string{"domain"}),
		anomaliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "anomalies_total",
			Help: "Anomalies and clog points reported by domain and severity.",
		}, []string{"domain", "severity"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		chatRepliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Chat assistant replies by intent and responder.",
		}, []string{"intent", "responder"}),
		publishedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reports_published_total",
			Help: "Reports handed to outbound sinks by sink and outcome.",
		}, []string{"sink", "outcome"}),
	}

	m.registry.MustRegister(
		m.analysesTotal,
		m.analysisDuration,
		m.anomaliesTotal,
		m.httpRequestsTotal,
		m.httpDuration,
		m.chatRepliesTotal,
		m.publishedTotal,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) Analysis(domain string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(domain, outcome(err)).Inc()
	m.analysisDuration.WithLabelValues(domain).Observe(duration.Seconds())
}

func (m *Metrics) Anomalies(domain, severity string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.anomaliesTotal.WithLabelValues(domain, severity).Add(float64(n))
}

func (m *Metrics) HTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) ChatReply(intent, responder string) {
	if m == nil {
		return
	}
	m.chatRepliesTotal.WithLabelValues(intent, responder).Inc()
}

func (m *Metrics) Published(sink string, err error) {
	if m == nil {
		return
	}
	m.publishedTotal.WithLabelValues(sink, outcome(err)).Inc()
}
