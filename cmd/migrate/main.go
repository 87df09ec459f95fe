package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"

	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/pkg/config"
	"github.com/dietcoach/backend/pkg/db"
	"github.com/dietcoach/backend/pkg/logging"
)

// migrate creates the schema and seeds the default roles. Safe to run more
// than once.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	config.MustNonEmpty(dsn, "DATABASE_URL")
	logger := logging.New(os.Getenv("LOG_LEVEL")).With("cmd", "migrate")

	if err := run(dsn, logger); err != nil {
		logger.Error("migrate_failed", "error", err)
		os.Exit(1)
	}
}

func run(dsn string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("sql open: %w", err)
	}
	defer sqlDB.Close()

	gdb, err := db.OpenDialector(ctx, postgres.New(postgres.Config{Conn: sqlDB}))
	if err != nil {
		return err
	}

	r := repo.New(gdb)
	if err := r.Migrate(ctx); err != nil {
		return err
	}

	roles, err := r.ListRoles(ctx)
	if err != nil {
		return fmt.Errorf("list roles: %w", err)
	}
	for _, role := range roles {
		logger.Info("role_ready", "id", role.ID, "role", role.RoleName)
	}
	logger.Info("migrate_done")
	return nil
}
