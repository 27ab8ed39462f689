package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/mysolah/solah-bot/internal/bot"
	"github.com/mysolah/solah-bot/internal/geocode"
	"github.com/mysolah/solah-bot/internal/health"
	"github.com/mysolah/solah-bot/internal/i18n"
	"github.com/mysolah/solah-bot/internal/idempotency"
	"github.com/mysolah/solah-bot/internal/lifecycle"
	"github.com/mysolah/solah-bot/internal/location"
	"github.com/mysolah/solah-bot/internal/middleware"
	"github.com/mysolah/solah-bot/internal/prayer"
	"github.com/mysolah/solah-bot/internal/ratelimit"
	"github.com/mysolah/solah-bot/pkg/config"
	"github.com/mysolah/solah-bot/pkg/graceful"
	"github.com/mysolah/solah-bot/pkg/logger"
	"github.com/mysolah/solah-bot/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bot terminated", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, cfg.Sentry.Enabled)
	log.Info("starting solah bot",
		slog.String("env", cfg.AppEnv),
		slog.String("mode", cfg.Bot.Mode),
		slog.String("http_port", cfg.Server.Port),
	)

	if cfg.Sentry.Enabled {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		})
		if err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	config.Watch(v, log, func(updated *config.Config) {
		logger.SetLevel(updated.Log.Level)
	})

	shutdown := lifecycle.NewShutdown(log)

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		shutdown.Register("redis", func(context.Context) error {
			return rdb.Close()
		})
	}

	var rateLimitMw *middleware.RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		var limiter ratelimit.Limiter
		if rdb != nil {
			limiter = ratelimit.NewRedisLimiter(rdb.Client, log)
		} else {
			memLimiter := ratelimit.NewMemoryLimiter(log)
			limiter = memLimiter
			cleaner := ratelimit.NewCleaner(memLimiter, log, 10*time.Minute, time.Hour)
			go cleaner.Run(ctx)
		}
		rateLimitMw = middleware.NewRateLimitMiddleware(limiter, ratelimit.NewRules(cfg.RateLimit), log)
	}

	var idemManager idempotency.Manager
	if rdb != nil {
		idemManager = idempotency.NewManager(idempotency.NewRedisStore(rdb.Client, log), log)
	}

	store := location.NewStore(location.Location{
		City:    cfg.DefaultLocation.City,
		Country: cfg.DefaultLocation.Country,
	})

	clock := prayer.NewSystemClock(log)
	prayerClient := prayer.NewClient(cfg.PrayerAPI, log)
	session := prayer.NewSession(store, prayerClient, clock, log)
	geocoder := geocode.NewClient(cfg.Geocoding, log)

	messages, err := i18n.Load(cfg.Bot.Language)
	if err != nil {
		return err
	}
	translator := messages.Translator(cfg.Bot.Language)

	b, err := bot.New(*cfg, log, session, geocoder, store, translator, idemManager, rateLimitMw)
	if err != nil {
		return err
	}
	shutdown.Register("telegram-bot", func(context.Context) error {
		b.Stop()
		return nil
	})

	checker := health.NewChecker(log)
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))
	if rdb != nil {
		checker.AddCheck("redis", health.NewRedisChecker(rdb))
	}

	healthSrv := graceful.NewServer(log, &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           health.NewHandler(checker, log),
		ReadHeaderTimeout: 5 * time.Second,
	}, cfg.Server.ShutdownTimeout)

	go func() {
		if err := healthSrv.ListenAndServe(ctx); err != nil {
			log.Error("health server stopped", slog.Any("error", err))
		}
	}()

	go b.Start()
	log.Info("solah bot is running")

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return shutdown.Execute(shutdownCtx)
}
