package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/batchcost/internal/config"
	"github.com/mamadbah2/batchcost/internal/repository/graph"
	"github.com/mamadbah2/batchcost/internal/repository/mongodb"
	"github.com/mamadbah2/batchcost/internal/repository/sheets"
	"github.com/mamadbah2/batchcost/internal/scheduler"
	"github.com/mamadbah2/batchcost/internal/server/handlers"
	"github.com/mamadbah2/batchcost/internal/server/router"
	batchsvc "github.com/mamadbah2/batchcost/internal/service/batches"
	"github.com/mamadbah2/batchcost/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	graphClient := graph.NewClient(cfg.Graph, graph.NewTokenCache(), baseLogger.Named("repo.graph"))
	store := graph.NewListStore(graphClient, cfg.Lists)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// The Google Sheets ledger is optional; skip it when not configured.
	var ledger sheets.Repository
	if cfg.Ledger.SpreadsheetID != "" {
		ledgerRepo, err := sheets.NewLedgerRepository(context.Background(), cfg.Ledger, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		ledger = ledgerRepo
		baseLogger.Info("google sheets ledger enabled")
	} else {
		baseLogger.Warn("ledger spreadsheet id missing, sheets ledger disabled")
	}

	svc := batchsvc.NewService(store, mongoRepo, ledger, baseLogger.Named("svc.batches"))
	batchHandler := handlers.NewBatchHandler(svc, baseLogger.Named("handlers.batches"))
	engine := router.New(batchHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Recalc, svc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
