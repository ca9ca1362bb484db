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

	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/booking"
	"github.com/rogerio-castellano/appointment-tracker/internal/config"
	"github.com/rogerio-castellano/appointment-tracker/internal/db"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/ban"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/appointment-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/router"
	"github.com/rogerio-castellano/appointment-tracker/internal/jobs"
	"github.com/rogerio-castellano/appointment-tracker/internal/log"
	"github.com/rogerio-castellano/appointment-tracker/internal/notify"
	"github.com/rogerio-castellano/appointment-tracker/internal/redissvc"
	"github.com/rogerio-castellano/appointment-tracker/internal/repo"
	"github.com/rogerio-castellano/appointment-tracker/internal/seed"
	"github.com/rogerio-castellano/appointment-tracker/internal/validator"
)

// @title Appointment Tracker API
// @version 1.0
// @description REST API for booking appointments, managing staff, services and the product stock they consume.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	logger := log.NewSlogLogger(cfg.Log)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rdb, err := redissvc.Connect(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("error connecting to redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		logger.WarnContext(ctx, "redis not configured, keeping tokens and bans in memory")
	}

	notifier, closeNotifier, err := newNotifier(ctx, cfg, store, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	var (
		tokens auth.TokenStore = auth.NewMemoryTokenStore()
		bans   ban.Store       = ban.NewMemoryStore()
	)
	if rdb != nil {
		tokens = auth.NewRedisTokenStore(rdb)
		bans = ban.NewRedisStore(rdb)
	}

	bookingSvc := booking.NewService(store, notifier, logger)
	defer bookingSvc.Wait()

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	authSvc := auth.NewService(store, issuer, tokens, cfg.Auth.RefreshTTL, logger)
	guard := ban.NewGuard(bans, notifier, logger, cfg.RateLimit)
	limiter := rl.New(cfg.RateLimit)
	go limiter.Run(ctx, cfg.RateLimit.CleanupInterval)

	if cfg.Seed.OnStart {
		if err := seed.New(store, bookingSvc, cfg.Seed, logger).Run(ctx); err != nil {
			return fmt.Errorf("error seeding data: %w", err)
		}
	}

	scheduler, err := jobs.New(guard, tokens, store.Products(), notifier, logger)
	if err != nil {
		return fmt.Errorf("error scheduling jobs: %w", err)
	}
	scheduler.Start()

	server := handlers.NewServer(store, bookingSvc, authSvc, validator.MustNew(), logger,
		handlers.WithDefaultThreshold(cfg.LowStockDefaultThreshold),
		handlers.WithHealthCheck("redis", func(ctx context.Context) error { return redissvc.Ping(ctx, rdb) }),
	)
	srv := &http.Server{
		Addr: cfg.HTTP.Addr(),
		Handler: router.NewRouter(router.Deps{
			Server:      server,
			Issuer:      issuer,
			Limiter:     limiter,
			Guard:       guard,
			Logger:      logger,
			CORSOrigins: cfg.HTTP.CORSOrigins,
			TrustProxy:  cfg.HTTP.TrustProxy,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server started", slog.String("address", srv.Addr), slog.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error serving http: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("http server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down http server", slog.Any("error", err))
	}
	logger.Info("http server is stopped")
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (repo.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		return repo.NewMemoryStore(), func() {}, nil
	}

	database, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(ctx, database); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("error migrating database: %w", err)
		}
	}
	return repo.NewPostgresStore(database), func() { _ = database.Close() }, nil
}

func newNotifier(ctx context.Context, cfg config.Config, store repo.Store, logger *slog.Logger) (notify.Notifier, func(), error) {
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	cleanup := func() {}

	if cfg.Alerts.EmailEnabled() {
		email, err := notify.NewEmailNotifier(cfg.Alerts)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating email notifier: %w", err)
		}
		notifiers = append(notifiers, email)
	}
	if cfg.Alerts.ExpoPushURL != "" {
		notifiers = append(notifiers, notify.NewPushNotifier(cfg.Alerts.ExpoPushURL, store.Employees(), logger))
	}
	if cfg.Kafka.Enabled() {
		producer, err := notify.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating kafka producer: %w", err)
		}
		notifiers = append(notifiers, notify.NewKafkaNotifier(producer, cfg.Kafka.Topic))
		cleanup = producer.Close
	}
	return notifiers, cleanup, nil
}
