package main

import (
	"context"
	"flag"
	"os"

	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/migrate"
)

// Usage:
//
//	migrate -command up
//	migrate -command down
//	migrate -command status
//	migrate -to 00002
func main() {
	command := flag.String("command", "up", "goose command to run (up, down, status, version)")
	to := flag.String("to", "", "migrate to a specific version instead of running a command")
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "shopcart-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx := context.Background()

	client, err := db.New(cfg.DB)
	if err != nil {
		logg.Error(ctx, "database connect failed", err)
		os.Exit(1)
	}
	defer client.Close()

	sqlDB, err := client.Gorm().DB()
	if err != nil {
		logg.Error(ctx, "extracting sql.DB failed", err)
		os.Exit(1)
	}

	if *to != "" {
		if err := migrate.MigrateToVersion(ctx, sqlDB, *dir, *to); err != nil {
			logg.Error(ctx, "migrate to version failed", err)
			os.Exit(1)
		}
		logg.Info(logg.WithField(ctx, "version", *to), "migrated to version")
		return
	}

	if err := migrate.Run(ctx, sqlDB, *dir, *command, flag.Args()...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "command", *command), "migration complete")
}
