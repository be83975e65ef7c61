package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "evoting"

const (
	ReasonAlreadyVoted = "already_voted"
	ReasonWriteFailed  = "write_failed"
	ReasonStorage      = "storage"
	ReasonNotEligible  = "not_eligible"
)

type Metrics struct {
	registry *prometheus.Registry

	VotesCast       prometheus.Counter
	VotesRejected   *prometheus.CounterVec
	ReadsDegraded   *prometheus.CounterVec
	ElectionDeletes prometheus.Counter
	EventFailures   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		VotesCast: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_cast_total",
			Help:      "Votes durably recorded.",
		}),
		VotesRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_rejected_total",
			Help:      "Vote submissions that did not produce a vote row.",
		}, []string{"reason"}),
		ReadsDegraded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads_degraded_total",
			Help:      "Reads that failed and were served as empty results.",
		}, []string{"query"}),
		ElectionDeletes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "election_deletes_total",
			Help:      "Elections removed together with their candidates and votes.",
		}),
		EventFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_failures_total",
			Help:      "Events that could not be published.",
		}, []string{"type"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request latency keyed by the matched route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.RequestDuration.
			WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
