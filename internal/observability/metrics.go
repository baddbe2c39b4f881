package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// namespace prefixes every collector exported on /metrics.
const namespace = "academy"

var (
	registerOnce          sync.Once
	adminRequestsTotal    *prometheus.CounterVec
	adminLatencySeconds   *prometheus.HistogramVec
	adminErrorsTotal      *prometheus.CounterVec
	promotionRunsTotal    *prometheus.CounterVec
	promotionMessages     *prometheus.CounterVec
	contactSubmissions    *prometheus.CounterVec
	uploadRequestsTotal   *prometheus.CounterVec
	uploadRejectedTotal   *prometheus.CounterVec
	uploadLatencySeconds  prometheus.Histogram
	loginAttemptsTotal    *prometheus.CounterVec
	noticeBroadcastsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors exposed by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_requests_total",
			Help:      "Total number of admin requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "admin_latency_seconds",
			Help:      "Latency distribution for admin requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		adminErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_errors_total",
			Help:      "Total number of error responses returned by admin endpoints.",
		}, []string{"method", "route", "status"})

		promotionRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotion_runs_total",
			Help:      "Scheduled message promotion runs by outcome.",
		}, []string{"outcome"})

		promotionMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotion_messages_total",
			Help:      "Scheduled messages handled by the promotion job.",
		}, []string{"result"})

		contactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by status.",
		}, []string{"status"})

		uploadRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "material_uploads_total",
			Help:      "Stored course materials by kind.",
		}, []string{"kind"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "material_uploads_rejected_total",
			Help:      "Rejected material uploads by reason.",
		}, []string{"reason"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "material_upload_latency_seconds",
			Help:      "Time spent storing a material file.",
			Buckets:   prometheus.DefBuckets,
		})

		loginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"})

		noticeBroadcastsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notice_broadcasts_total",
			Help:      "Notice events published by transport and result.",
		}, []string{"transport", "result"})

		prometheus.MustRegister(
			adminRequestsTotal,
			adminLatencySeconds,
			adminErrorsTotal,
			promotionRunsTotal,
			promotionMessages,
			contactSubmissions,
			uploadRequestsTotal,
			uploadRejectedTotal,
			uploadLatencySeconds,
			loginAttemptsTotal,
			noticeBroadcastsTotal,
		)
	})
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}

// AdminErrors exposes the counter for admin error responses.
func AdminErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return adminErrorsTotal
}

// PromotionRuns counts promotion runs labelled ok or failed.
func PromotionRuns() *prometheus.CounterVec {
	RegisterMetrics()
	return promotionRunsTotal
}

// PromotionMessages counts messages labelled promoted, skipped or failed.
func PromotionMessages() *prometheus.CounterVec {
	RegisterMetrics()
	return promotionMessages
}

// ContactSubmissions counts contact submissions by status.
func ContactSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return contactSubmissions
}

// UploadRequests counts stored materials by kind.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequestsTotal
}

// UploadRejected counts rejected uploads by reason.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// UploadLatency observes storage time for materials.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}

// LoginAttempts counts login attempts by result.
func LoginAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return loginAttemptsTotal
}

// NoticeBroadcasts counts notice events by transport and result.
func NoticeBroadcasts() *prometheus.CounterVec {
	RegisterMetrics()
	return noticeBroadcastsTotal
}
