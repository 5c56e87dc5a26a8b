// Package metrics exposes Prometheus collectors on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/casa/internal/expense"
)

type Metrics struct {
	registry *prometheus.Registry

	expensesCreated *prometheus.CounterVec
	expensesDeleted prometheus.Counter
	importedRows    prometheus.Counter
	unallocated     prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		expensesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "casa_expenses_created_total",
			Help: "Expenses recorded, by category.",
		}, []string{"category"}),
		expensesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "casa_expenses_deleted_total",
			Help: "Expenses removed.",
		}),
		importedRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "casa_import_rows_total",
			Help: "Rows stored from imported spreadsheets.",
		}),
		unallocated: factory.NewGauge(prometheus.GaugeOpts{
			Name: "casa_unallocated_categories",
			Help: "Categories with a positive total and nobody to charge, as of the last summary.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "casa_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ExpenseCreated counts a stored expense. The recording methods are no-ops on a nil
// *Metrics.
func (m *Metrics) ExpenseCreated(c expense.Category) {
	if m == nil {
		return
	}

	m.expensesCreated.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) ExpenseDeleted() {
	if m == nil {
		return
	}

	m.expensesDeleted.Inc()
}

func (m *Metrics) RowsImported(n int) {
	if m == nil {
		return
	}

	m.importedRows.Add(float64(n))
}

func (m *Metrics) SetUnallocated(n int) {
	if m == nil {
		return
	}

	m.unallocated.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request latency labelled by the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
