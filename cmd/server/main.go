package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/seed"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fyyur:", err)
		os.Exit(1)
	}
}

// stores groups the three repositories behind whichever driver is active.
type stores struct {
	venues  handler.VenueStore
	artists handler.ArtistStore
	shows   handler.ShowStore
	db      *sql.DB
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	if cfg.SeedData {
		loaded, err := seed.Load(ctx, st.venues, st.artists, st.shows)
		if err != nil {
			return err
		}
		log.Info("seed data", zap.Bool("inserted", loaded))
	}

	var pub handler.ShowPublisher
	if cfg.PublishEvents {
		pub = service.NewPublisher(cfg.RabbitURL, log)
	}
	if cfg.ConsumeEvents {
		go func() {
			if err := queue.StartShowConsumer(ctx, cfg.RabbitURL, cfg.EventLogPath, log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("show consumer stopped", zap.Error(err))
			}
		}()
	}

	// Redis backs the page cache and the rate limiter; without it both are
	// skipped.
	rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if err != nil {
		log.Warn("redis unavailable, page cache and rate limit disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if st.db != nil {
		reg.MustRegister(collectors.NewDBStatsCollector(st.db, cfg.DBName))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	deps := router.Deps{
		Handler:     handler.New(st.venues, st.artists, st.shows, pub),
		Metrics:     middleware.NewHTTPMetrics(reg),
		Redis:       rdb,
		Cache:       config.LoadCacheConfig(),
		RateLimit:   config.LoadRateLimitConfig(),
		FlashSecret: cfg.FlashSecret,
		FlashTTL:    cfg.FlashTTL,
	}
	if st.db != nil {
		deps.DB = st.db
	}
	router.RegisterRoutes(e, deps)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.StoreDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		mem := repository.NewMemoryStore()
		return stores{venues: mem.Venues(), artists: mem.Artists(), shows: mem.Shows()}, nil
	}

	db, err := database.Open(ctx, database.Options{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		return stores{}, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return stores{}, fmt.Errorf("migrate: %w", err)
	}
	log.Info("database ready", zap.String("addr", cfg.DBHost+":"+cfg.DBPort), zap.String("name", cfg.DBName))
	return stores{
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
		db:      db,
	}, nil
}
