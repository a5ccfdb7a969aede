package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prom is the prometheus-backed Metrics implementation.
type Prom struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	mirrorWrites *prometheus.CounterVec
	mailSends    *prometheus.CounterVec
	ordersTotal  prometheus.Counter
}

func NewProm() *Prom {
	p := &Prom{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_ms",
				Help:    "Duration of HTTP requests in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			},
			[]string{"method", "route"},
		),
		mirrorWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mirror_writes_total",
				Help: "Secondary-store mirror write attempts by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		mailSends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mail_sends_total",
				Help: "Confirmation mail attempts by outcome",
			},
			[]string{"outcome"},
		),
		ordersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total number of orders created",
			},
		),
	}
	prometheus.MustRegister(p.httpRequests, p.httpDuration, p.mirrorWrites, p.mailSends, p.ordersTotal)
	return p
}

func (p *Prom) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(durMs)
}

func (p *Prom) ObserveMirror(op string, ok bool) {
	p.mirrorWrites.WithLabelValues(op, outcome(ok)).Inc()
}

func (p *Prom) ObserveMail(ok bool) {
	p.mailSends.WithLabelValues(outcome(ok)).Inc()
}

func (p *Prom) IncOrderCreated() { p.ordersTotal.Inc() }

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler { return promhttp.Handler() }
