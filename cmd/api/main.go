package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/internal/service"
	httpserver "github.com/dietcoach/backend/internal/transport/http"
	"github.com/dietcoach/backend/pkg/config"
	"github.com/dietcoach/backend/pkg/db"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/genai"
	"github.com/dietcoach/backend/pkg/hash"
	"github.com/dietcoach/backend/pkg/logging"
	loggingmw "github.com/dietcoach/backend/pkg/middleware/logging"
	"github.com/dietcoach/backend/pkg/revocation"
	"github.com/dietcoach/backend/pkg/search"
	"github.com/dietcoach/backend/pkg/tokens"
)

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("api_failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run returns on shutdown or on the first startup failure, after every
// resource opened so far has been closed.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		return fmt.Errorf("db init: %w", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}()

	r := repo.New(gdb)
	if cfg.AutoMigrate {
		if err := r.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var revoked revocation.Store
	if cfg.RedisURL != "" {
		client, err := revocation.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer client.Close()
		revoked = revocation.NewRedis(client)
		logger.Info("revocation_store", "backend", "redis")
	} else {
		mem := revocation.NewMemory()
		go mem.RunPruner(ctx, time.Minute)
		revoked = mem
		logger.Warn("revocation_store", "backend", "memory", "reason", "REDIS_URL not set")
	}

	var pub events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		k, err := events.NewKafka(cfg.KafkaBrokers)
		if err != nil {
			return fmt.Errorf("kafka init: %w", err)
		}
		pub = events.NewQueue(k, cfg.EventQueueSize, logger)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}()

	var index service.UserIndex
	if cfg.ESURL != "" {
		es, err := search.NewClient(ctx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			return fmt.Errorf("elasticsearch init: %w", err)
		}
		index = search.NewUserIndex(es, cfg.ESUserIndex)
	}

	var ai genai.Generator = genai.Unavailable{}
	if cfg.GeminiAPIKey != "" {
		g, err := genai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("gemini init: %w", err)
		}
		defer g.Close()
		ai = g
	} else {
		logger.Warn("ai_disabled", "reason", "GEMINI_API_KEY not set")
	}

	hasher := hash.NewHasher(cfg.BcryptCost)
	mgr := tokens.NewManager([]byte(cfg.JWTSecret), cfg.JWTAccessTTL, revoked)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = cfg.AITimeout + 15*time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		DB: gdb,
		Auth: &service.AuthService{
			Repo:        r,
			Hasher:      hasher,
			Tokens:      mgr,
			Events:      pub,
			Index:       index,
			PhoneRegion: cfg.PhoneRegion,
		},
		Users: &service.UserService{
			Repo:        r,
			Hasher:      hasher,
			Events:      pub,
			Index:       index,
			PhoneRegion: cfg.PhoneRegion,
		},
		Diet:     &service.DietService{Repo: r, AI: ai, Events: pub, AITimeout: cfg.AITimeout},
		Chat:     &service.ChatService{Repo: r, AI: ai, Events: pub, AITimeout: cfg.AITimeout},
		Exercise: &service.ExerciseService{Repo: r, Events: pub},
		Catalog:  &service.CatalogService{Repo: r},
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listen", "addr", cfg.Addr())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}
	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	}
	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}
