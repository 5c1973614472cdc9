package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics métricas RED de la API HTTP.
type Metrics struct {
	reg  *prometheus.Registry
	reqs *prometheus.CounterVec
	errs *prometheus.CounterVec
	durs *prometheus.HistogramVec
}

// NewMetrics registra los colectores en un registry propio (sin estado global).
func NewMetrics() *Metrics {
	const namespace = "fieldservice"
	const subsystem = "http"

	reqs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "Number of HTTP requests served",
	}, []string{"method", "route", "status"})

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "errors_total",
		Help:      "Number of HTTP requests answered with a 5xx status",
	}, []string{"method", "route"})

	durs := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(reqs, errs, durs, collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Metrics{reg: reg, reqs: reqs, errs: errs, durs: durs}
}

// Middleware mide cada request. route es el patrón registrado (/api/v1/customers/:id), no el path.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		method := c.Method()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.reqs.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.durs.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if status >= fiber.StatusInternalServerError {
			m.errs.WithLabelValues(method, route).Inc()
		}
		return err
	}
}

// Handler expone el registry en formato Prometheus (GET /metrics).
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
}
