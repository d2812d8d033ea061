// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeMisconfigured = "misconfigured"
	OutcomeFailed        = "failed"
	OutcomeRejected      = "rejected"
)

var (
	// LeadsTotal counts lead submissions by outcome.
	LeadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediconect_leads_total",
			Help: "Lead submissions by outcome",
		},
		[]string{"outcome"},
	)

	// LeadNotificationsTotal counts notification emails by outcome.
	LeadNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediconect_lead_notifications_total",
			Help: "Lead notification emails by outcome",
		},
		[]string{"outcome"},
	)

	// NewsletterImportsTotal counts newsletter subscriptions by outcome.
	NewsletterImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediconect_newsletter_imports_total",
			Help: "Newsletter subscriptions by outcome",
		},
		[]string{"outcome"},
	)

	// LeadStoreDuration observes lead store insert latency in seconds.
	LeadStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediconect_lead_store_duration_seconds",
			Help:    "Lead store insert duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"driver", "outcome"},
	)

	// HTTPRequestDuration observes request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"method", "path", "status"},
	)
)

// RecordLead counts one lead submission.
func RecordLead(outcome string) {
	LeadsTotal.WithLabelValues(outcome).Inc()
}

// RecordLeadNotification counts one notification attempt.
func RecordLeadNotification(outcome string) {
	LeadNotificationsTotal.WithLabelValues(outcome).Inc()
}

// RecordNewsletterImport counts one newsletter subscription.
func RecordNewsletterImport(outcome string) {
	NewsletterImportsTotal.WithLabelValues(outcome).Inc()
}

// RecordLeadStore observes one insert.
func RecordLeadStore(driver, outcome string, d time.Duration) {
	LeadStoreDuration.WithLabelValues(driver, outcome).Observe(d.Seconds())
}

// RecordHTTPRequest observes one request. path is the route template, not the raw URL.
func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
}
