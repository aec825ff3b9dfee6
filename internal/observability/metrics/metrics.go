package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WebhookMetrics exposes counters/histograms for the webhook flow.
type WebhookMetrics struct {
	requestsTotal     *prometheus.CounterVec
	webhookLatency    *prometheus.HistogramVec
	completionLatency *prometheus.HistogramVec
}

func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	m := &WebhookMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whatsbot",
			Subsystem: "webhook",
			Name:      "requests_total",
			Help:      "Inbound WhatsApp webhooks by variant and processing outcome",
		}, []string{"variant", "outcome"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "whatsbot",
			Subsystem: "webhook",
			Name:      "latency_seconds",
			Help:      "Time spent handling a webhook including outbound calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"variant"}),
		completionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "whatsbot",
			Subsystem: "completion",
			Name:      "latency_seconds",
			Help:      "Latency of chat completion calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 30},
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.webhookLatency, m.completionLatency)
	return m
}

func (m *WebhookMetrics) ObserveWebhook(variant, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(variant, outcome).Inc()
	m.webhookLatency.WithLabelValues(variant).Observe(seconds)
}

func (m *WebhookMetrics) ObserveCompletion(status string, seconds float64) {
	if m == nil {
		return
	}
	m.completionLatency.WithLabelValues(status).Observe(seconds)
}

// Handler serves the metrics registered in g.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
