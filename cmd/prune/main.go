// Command prune runs the maintenance sweep once and exits. The API binary
// runs the same job nightly; this one is for operators and cron outside
// the process.
package main

import (
	"context"
	"log"
	"time"

	"github.com/refurnish/refurnish-backend/config"
	"github.com/refurnish/refurnish-backend/internal/db"
	"github.com/refurnish/refurnish-backend/internal/maintenance"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	database, err := db.Open(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	uploadDir := ""
	if cfg.Storage.Driver == "local" {
		uploadDir = cfg.Upload.Dir
	}

	rep, err := maintenance.NewPruner(database.Pool, uploadDir).Run(ctx)
	if err != nil {
		log.Fatalf("prune: %v", err)
	}

	log.Printf("prune done: colors=%d files=%d", rep.ColorsDeleted, rep.FilesDeleted)
}
