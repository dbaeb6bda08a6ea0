package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/refurnish/refurnish-backend/config"
	"github.com/refurnish/refurnish-backend/internal/auth"
	"github.com/refurnish/refurnish-backend/internal/bootstrap"
	"github.com/refurnish/refurnish-backend/internal/db"
	"github.com/refurnish/refurnish-backend/internal/maintenance"
	cronjob "github.com/refurnish/refurnish-backend/internal/maintenance/cron"
	"github.com/refurnish/refurnish-backend/internal/storage/postgres"
)

const serviceName = "refurnish-backend"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	database, err := db.Open(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	if err := postgres.Migrate(ctx, database.Pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("db (sql): %v", err)
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	if authClient == nil {
		log.Println("Firebase not configured, using X-User-Id dev fallback")
	}

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	uploadDir := ""
	if cfg.Storage.Driver == "local" {
		uploadDir = cfg.Upload.Dir
	}

	pruner := maintenance.NewPruner(database.Pool, uploadDir)

	scheduler := cronjob.NewScheduler(pruner)
	scheduler.Start()
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          database.Pool,
		SQLDB:       sqlDB,
		Redis:       rdb,
		Storage:     store,
		UploadDir:   uploadDir,
		MaxUpload:   cfg.Upload.MaxBytes,
		AuthClient:  authClient,
		AdminAPIKey: cfg.Admin.APIKey,
		Pruner:      pruner,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("%s listening on :%s", serviceName, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
