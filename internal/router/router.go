package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/sales-dashboard/internal/handlers"
	"github.com/GregMSThompson/sales-dashboard/internal/middleware"
)

// Options toggles the optional parts of the middleware chain.
type Options struct {
	// Auth, when set, requires a Firebase ID token on every API route and
	// uses its UID as the session id.
	Auth *middleware.Middleware
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	dsh := handlers.NewDatasetHandlers(deps)
	dbh := handlers.NewDashboardHandlers(deps)
	anh := handlers.NewAnalyticsHandlers(deps)
	exh := handlers.NewExplorerHandlers(deps)

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth.FirebaseAuth)
		}
		r.Use(middleware.Session(deps.ResponseHandler))

		r.Mount("/datasets", dsh.DatasetRoutes())
		r.Mount("/dashboard", dbh.DashboardRoutes())
		r.Mount("/analytics", anh.AnalyticsRoutes())
		r.Mount("/explorer", exh.ExplorerRoutes())
	})
	return r
}
