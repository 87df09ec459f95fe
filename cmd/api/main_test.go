package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dietcoach/backend/pkg/config"
)

func TestRun_StartupFailuresReturnErrors(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := config.Config{
		DatabaseURL:  "sqlite::memory:",
		AutoMigrate:  true,
		JWTSecret:    "run-test-secret-run-test-secret-run",
		JWTAccessTTL: time.Hour,
		AITimeout:    time.Second,
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   string
	}{
		{name: "no database", mutate: func(c *config.Config) { c.DatabaseURL = "" }, want: "db init"},
		{name: "redis down", mutate: func(c *config.Config) { c.RedisURL = "127.0.0.1:1" }, want: "redis connect"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base
			tt.mutate(&cfg)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			err := run(ctx, cfg, logger)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
