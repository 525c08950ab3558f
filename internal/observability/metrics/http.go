package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// QAMetrics owns a private registry with HTTP and answer pipeline series.
type QAMetrics struct {
	service  string
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	answersTotal       *prometheus.CounterVec
	answerDuration     *prometheus.HistogramVec
	corpusDocuments    prometheus.Histogram
	candidateSentences prometheus.Histogram
}

func NewQAMetrics(service string) *QAMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qa",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qa",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "qa",
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	answersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qa",
			Subsystem: "answer",
			Name:      "total",
			Help:      "Total answered questions by status.",
		},
		[]string{"service", "status"},
	)
	answerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qa",
			Subsystem: "answer",
			Name:      "duration_seconds",
			Help:      "Time to load, rank and answer one question.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	corpusDocuments := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "qa",
			Subsystem:   "answer",
			Name:        "corpus_documents",
			Help:        "Documents loaded per answered question.",
			Buckets:     []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	candidateSentences := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "qa",
			Subsystem:   "answer",
			Name:        "candidate_sentences",
			Help:        "Sentences ranked per answered question.",
			Buckets:     []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		answersTotal,
		answerDuration,
		corpusDocuments,
		candidateSentences,
	)

	return &QAMetrics{
		service:            service,
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		answersTotal:       answersTotal,
		answerDuration:     answerDuration,
		corpusDocuments:    corpusDocuments,
		candidateSentences: candidateSentences,
	}
}

func (m *QAMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *QAMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *QAMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
