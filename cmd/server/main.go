package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"safecircle/internal/breach"
	"safecircle/internal/breach/journal"
	breachmetrics "safecircle/internal/breach/metrics"
	"safecircle/internal/directory"
	"safecircle/internal/geofence"
	"safecircle/internal/geofence/adapters"
	"safecircle/internal/notify"
	"safecircle/internal/platform/config"
	"safecircle/internal/platform/httpserver"
	"safecircle/internal/platform/logger"
	platformredis "safecircle/internal/platform/redis"
	httptransport "safecircle/internal/transport/http"
)

// main wires the dependency graph and keeps the server lifecycle small.
// Business logic lives in the internal packages. Empty backend URLs fall
// back to in-memory implementations so the binary runs standalone.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := newGeofenceStore(ctx, cfg)
	if err != nil {
		log.Error("geofence store init failed", "error", err.Error())
		os.Exit(1)
	}
	defer closeStore()

	cache, closeCache, err := newStateCache(ctx, cfg)
	if err != nil {
		log.Error("breach state cache init failed", "error", err.Error())
		os.Exit(1)
	}
	defer closeCache()

	// The user directory is owned by another service; the in-memory
	// implementation stands in until its client lands.
	dir := directory.NewInMemoryDirectory()

	svc := geofence.NewService(store, adapters.DirectoryFamilyLister{Directory: dir}, cache, log)

	m := breachmetrics.New()
	detector := breach.NewDetector(svc, cache, log, m)
	notifier := breach.NewNotifier(dir, notify.NewLogSink(log), log, m,
		breach.WithFanoutLimit(cfg.FanoutLimit))

	var eventJournal breach.Journal
	if len(cfg.KafkaBrokers) > 0 {
		kj, err := journal.NewKafkaJournal(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("kafka journal init failed", "error", err.Error())
			os.Exit(1)
		}
		defer kj.Close()
		eventJournal = kj
	}

	pipeline := breach.NewPipeline(detector, notifier, eventJournal, log,
		breach.WithLanes(cfg.Lanes))

	pipelineDone := make(chan error, 1)
	go func() {
		pipelineDone <- pipeline.Run(ctx)
	}()

	router := httptransport.NewRouter(log,
		httptransport.NewGeofenceHandler(svc, log),
		httptransport.NewLocationHandler(pipeline, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting safecircle", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}

	// Stop accepting new work, then let in-flight evaluations drain.
	cancel()
	<-pipelineDone
}

func newGeofenceStore(ctx context.Context, cfg config.Config) (geofence.Store, func(), error) {
	if cfg.PostgresURL == "" {
		return geofence.NewInMemoryStore(), func() {}, nil
	}
	db, err := sql.Open("pgx", cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	if _, err := db.ExecContext(ctx, geofence.Schema); err != nil {
		db.Close()
		return nil, nil, err
	}
	return geofence.NewPostgresStore(db), func() { db.Close() }, nil
}

func newStateCache(ctx context.Context, cfg config.Config) (breach.StateCache, func(), error) {
	if cfg.RedisURL == "" {
		return breach.NewInMemoryStateCache(), func() {}, nil
	}
	client, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return breach.NewRedisStateCache(client.Client), func() { client.Close() }, nil
}
