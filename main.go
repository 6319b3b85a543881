package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"demo_sales/api"
	"demo_sales/internal/config"
	"demo_sales/internal/events"
	"demo_sales/internal/events/kafka"
	"demo_sales/internal/events/ntfy"
	"demo_sales/internal/events/rabbitmq"
	"demo_sales/internal/logs"
	"demo_sales/internal/sales"
	"demo_sales/internal/storage/memdb"
	"demo_sales/internal/storage/postgres"
	"demo_sales/internal/storage/sqlite"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, recorder, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var opts []sales.Option
	publishers, err := openPublishers(cfg)
	if err != nil {
		return err
	}
	defer publishers.Close()
	if publishers.Len() > 0 {
		opts = append(opts, sales.WithPublisher(publishers))
	}
	salesService := sales.NewService(store, logger.Named("sales"), opts...)

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	api.InitRoutes(engine, api.Dependencies{
		Sales:         salesService,
		Logger:        logger.Named("http"),
		Logs:          recorder,
		Info:          api.Info{Version: cfg.Version, User: cfg.User},
		StaticDir:     cfg.StaticDir,
		MaxImageBytes: cfg.MaxImageBytes,
		SleepDuration: cfg.SleepDuration,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("store", cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("unexpected http server error: %w", err)
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownRelease()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	logger.Info("graceful shutdown complete")
	return nil
}

// newLogger builds the process logger and tees it into a recorder so GET /logs
// can read entries back.
func newLogger(cfg config.Config) (*zap.Logger, *logs.Recorder, error) {
	var (
		base *zap.Logger
		err  error
	)
	if cfg.Development() {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, err
	}

	recorder := logs.NewRecorder(cfg.LogBufferSize, zapcore.DebugLevel)
	logger := base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, recorder)
	}))
	return logger, recorder, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (sales.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendMemDB:
		store, err := memdb.NewStore()
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.BackendPostgres:
		db, err := postgres.ConnectDb(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("connecting with db: %w", err)
		}
		if err := postgres.MigrationUp(db); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("migrating: %w", err)
		}
		logger.Info("connected to postgres")
		return postgres.NewStore(db), func() { db.Close() }, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { store.Close() }, nil

	default:
		return sales.NewLocalStorage(), noop, nil
	}
}

func openPublishers(cfg config.Config) (*events.Fanout, error) {
	var publishers []events.Publisher

	if len(cfg.KafkaBrokers) > 0 {
		publishers = append(publishers, kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			events.NewFanout(publishers...).Close()
			return nil, err
		}
		publishers = append(publishers, p)
	}
	if cfg.NtfyURL != "" {
		publishers = append(publishers, ntfy.NewNtfy(cfg.NtfyURL, cfg.NtfyTimeout))
	}

	return events.NewFanout(publishers...), nil
}
