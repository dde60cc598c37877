package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmdesk/cmd"
	httpadapter "farmdesk/internal/adapters/in/http"
	"farmdesk/internal/adapters/out/postgres"
	"farmdesk/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("farmdesk: %v", err)
	}
}

func run() error {
	config, err := cmd.LoadConfig("farmdesk", os.Args[1:])
	if err != nil {
		return err
	}

	appLogger, syncLogger, err := logger.New(config.LogMode)
	if err != nil {
		return err
	}
	defer func() { _ = syncLogger() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.MigrateOnStart {
		if err := postgres.MigrateDSN(ctx, config.DSN(), "up"); err != nil {
			return err
		}
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	app, err :=cmd.NewCompositionRoot(ctx, config, gormDB, appLogger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), appLogger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("http server listening", "addr", config.HTTPAddr())
		if err := e.Start(config.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	appLogger.Info("shutting down")
	return err
}
