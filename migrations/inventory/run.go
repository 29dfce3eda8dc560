// Command inventory migrates the items and item_transactions schema.
package main

import (
	"context"
	"embed"
	"os"
	"time"

	"github.com/ghuser/vetclinic/pkg/config"
	"github.com/ghuser/vetclinic/pkg/logger"
	"github.com/ghuser/vetclinic/pkg/migrator"
)

//go:embed *.sql
var migrations embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewWithWriter(os.Stderr, "info").Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("process", "migrate", "schema", "inventory")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := migrator.RunMigrations(ctx, cfg.DatabaseURL, migrations, log); err != nil {
		log.Error("migrate inventory", "error", err)
		os.Exit(1) //nolint:gocritic
	}
}
