package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openmeteo/enhydris-synoptic/internal/aggregator"
	"github.com/openmeteo/enhydris-synoptic/internal/cache"
	appconfig "github.com/openmeteo/enhydris-synoptic/internal/config"
	"github.com/openmeteo/enhydris-synoptic/internal/db"
	"github.com/openmeteo/enhydris-synoptic/internal/notifier"
	redislib "github.com/openmeteo/enhydris-synoptic/internal/redis"
	"github.com/openmeteo/enhydris-synoptic/internal/render"
	"github.com/openmeteo/enhydris-synoptic/internal/repository"
	"github.com/openmeteo/enhydris-synoptic/internal/service"
)

// App wires dependencies for the synoptic service.
type App struct {
	cfg       *appconfig.Config
	service   *service.SynopticService
	scheduler *gocron.Scheduler
	sqlDB     *sql.DB
	redis     *redis.Client
	logger    *zap.Logger
}

// New builds the application graph.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	// Redis is optional; without it aggregates are only written to files.
	var redisClient *redis.Client
	var cacheManager *cache.Manager
	if cfg.Redis.Addr != "" {
		redisClient, err = redislib.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		cacheManager = cache.NewManager(cache.NewRedisKV(redisClient), cfg.CacheTTL(), logger)
	}

	groupRepo := repository.NewGroupRepository(sqlDB)
	tsRepo := repository.NewTimeseriesRepository(sqlDB, cfg.QueryTimeout())
	stationAgg := aggregator.NewStationAggregator(tsRepo, logger)

	renderer, err := render.NewFileRenderer(cfg.Output.Dir, render.NewPalette(cfg.Output.Palette...), logger)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	var notif notifier.Notifier
	if cfg.SMTP.Host != "" {
		notif = notifier.NewSMTPNotifier(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	} else {
		notif = notifier.NewLogNotifier(logger)
	}

	svc := service.NewSynopticService(groupRepo, stationAgg, renderer, notif, cacheManager, cfg.QueryTimeout()+30*time.Second, logger)

	return &App{
		cfg:       cfg,
		service:   svc,
		scheduler: gocron.NewScheduler(time.UTC),
		sqlDB:     sqlDB,
		redis:     redisClient,
		logger:    logger,
	}, nil
}

// Run performs an immediate run, then repeats on the configured interval
// until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.runOnce(ctx)

	_, err := a.scheduler.Every(a.cfg.Scheduler.IntervalMinutes).Minutes().Do(func() {
		a.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule synoptic runs: %w", err)
	}
	a.scheduler.StartAsync()
	a.logger.Info("scheduler started", zap.Int("interval_minutes", a.cfg.Scheduler.IntervalMinutes))

	<-ctx.Done()
	a.scheduler.Stop()
	return ctx.Err()
}

func (a *App) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	started := time.Now()
	a.logger.Info("synoptic run starting")
	if err := a.service.RunAll(ctx); err != nil {
		a.logger.Error("synoptic run failed", zap.Error(err))
		return
	}
	a.logger.Info("synoptic run completed", zap.Duration("elapsed", time.Since(started)))
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
