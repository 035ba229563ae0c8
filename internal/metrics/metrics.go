package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scoreboard", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "route", "status"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "scoreboard", Name: "handler_errors_total", Help: "Handler errors",
	})
	ScoreMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scoreboard", Name: "score_mutations_total", Help: "Score mutations by kind",
	}, []string{"kind"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scoreboard", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, ScoreMutations, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
