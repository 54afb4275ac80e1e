package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "audio_summarizer"

// HTTP metrics (incremented by middleware).
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"method", "path_pattern", "status_code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path_pattern"})
)

// Summarization metrics.
var (
	SummariesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_total",
		Help:      "Summarization attempts by outcome.",
	}, []string{"outcome"})

	SummarizeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summarize_duration_seconds",
		Help:      "Time spent waiting on the model per summarization.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	})

	SummariesInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "summaries_in_flight",
		Help:      "Summarizations currently waiting on the model.",
	})

	UploadsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Uploads refused by intake, by reason.",
	}, []string{"reason"})

	WatchedFilesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watched_files_total",
		Help:      "Drop-folder files processed, by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		SummariesTotal,
		SummarizeDuration,
		SummariesInFlight,
		UploadsRejectedTotal,
		WatchedFilesTotal,
	)
}

// ObserveSummary records one finished summarization.
func ObserveSummary(outcome string, elapsed time.Duration) {
	SummariesTotal.WithLabelValues(outcome).Inc()
	SummarizeDuration.Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
