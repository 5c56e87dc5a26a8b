package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/casa/internal/http/expense"
	"github.com/MrJamesThe3rd/casa/internal/http/export"
	"github.com/MrJamesThe3rd/casa/internal/http/importcsv"
	"github.com/MrJamesThe3rd/casa/internal/http/matching"
	"github.com/MrJamesThe3rd/casa/internal/http/summary"
	"github.com/MrJamesThe3rd/casa/internal/metrics"
)

type Options struct {
	CORSOrigins []string
	Metrics     *metrics.Metrics
}

func New(
	opts Options,
	expensesV1 *expense.Handler,
	summaryV1 *summary.Handler,
	reportV1 *export.Handler,
	importV1 *importcsv.Handler,
	matchingV1 *matching.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Disposition"},
			MaxAge:         300,
		}))
	}

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			expensesV1.Routes(r)
		})

		r.Group(summaryV1.Routes)

		r.Route("/report", reportV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/matching", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			matchingV1.Routes(r)
		})
	})

	return router
}
