package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "holdings",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, by method, route and status code.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "holdings",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	tagsReconciled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "holdings",
		Subsystem: "reconcile",
		Name:      "tags_total",
		Help:      "Tags resolved from nested investment payloads, by outcome (created or reused).",
	}, []string{"outcome"})
	activitiesAppended = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "holdings",
		Subsystem: "reconcile",
		Name:      "activities_appended_total",
		Help:      "Activities appended from nested investment payloads.",
	})
	imageUploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "holdings",
		Subsystem: "images",
		Name:      "uploads_total",
		Help:      "Investment image uploads, by outcome (stored or rejected).",
	}, []string{"outcome"})
)

const (
	TagCreated = "created"
	TagReused  = "reused"

	ImageStored   = "stored"
	ImageRejected = "rejected"
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, tagsReconciled, activitiesAppended, imageUploads)
}

// RecordRequest counts a finished HTTP request.
func RecordRequest(method, route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordTag counts a tag resolved during reconciliation.
func RecordTag(outcome string) {
	tagsReconciled.WithLabelValues(outcome).Inc()
}

// RecordActivities counts activities appended during reconciliation.
func RecordActivities(n int) {
	if n <= 0 {
		return
	}
	activitiesAppended.Add(float64(n))
}

// RecordImageUpload counts an image upload attempt.
func RecordImageUpload(outcome string) {
	imageUploads.WithLabelValues(outcome).Inc()
}

// TagsReconciled exposes the tag counter for assertions.
func TagsReconciled() *prometheus.CounterVec { return tagsReconciled }

// ActivitiesAppended exposes the activity counter for assertions.
func ActivitiesAppended() prometheus.Counter { return activitiesAppended }

// ImageUploads exposes the upload counter for assertions.
func ImageUploads() *prometheus.CounterVec { return imageUploads }

// HTTPRequests exposes the request counter for assertions.
func HTTPRequests() *prometheus.CounterVec { return httpRequests }
