package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/GregMSThompson/sales-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/sales-dashboard/internal/config"
	"github.com/GregMSThompson/sales-dashboard/internal/handlers"
	"github.com/GregMSThompson/sales-dashboard/internal/middleware"
	"github.com/GregMSThompson/sales-dashboard/internal/models"
	"github.com/GregMSThompson/sales-dashboard/internal/response"
	"github.com/GregMSThompson/sales-dashboard/internal/router"
	"github.com/GregMSThompson/sales-dashboard/internal/services"
	"github.com/GregMSThompson/sales-dashboard/internal/store"
)

// sessionStore is satisfied by both session backends.
type sessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	Save(ctx context.Context, state *models.SessionState) error
}

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	var sessions sessionStore = store.NewMemorySessionStore(cfg.MaxSessions, cfg.SessionTTL)
	if bs.Firestore != nil {
		sessions = store.NewSessionStore(bs.Firestore)
	}
	cache := store.NewDatasetCache(cfg.MaxSessions, cfg.SessionTTL)

	// services
	dsserv := services.NewDatasetService(cache, cfg.SampleDays, cfg.SampleSeed)
	dbserv := services.NewDashboardService(sessions, cache, dsserv)
	anserv := services.NewAnalyticsService(cache)
	exserv := services.NewExplorerService(cache)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.DatasetSvc = dsserv
	deps.DashboardSvc = dbserv
	deps.AnalyticsSvc = anserv
	deps.ExplorerSvc = exserv
	deps.MaxUploadBytes = cfg.MaxUploadBytes

	opts := router.Options{}
	if bs.Firebase != nil {
		opts.Auth = middleware.NewMiddleware(bs.Firebase)
	}

	// router
	r := router.NewRouter(deps, opts)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	bs.Log.Info("listening", "addr", srv.Addr)
	err = srv.ListenAndServe()
	exitOnError("server start failed", err, bs.Log)
}
