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

	"fulfillment/cmd"
	"fulfillment/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))

	uowFactory, closeStorage, err := cmd.OpenStorage(configs)
	if err != nil {
		log.Fatalf("Error opening %s storage: %v", configs.Storage, err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logger.Warn("close storage", "error", err)
		}
	}()

	app := cmd.NewCompositionRoot(configs, uowFactory, commands.SystemClock{}, logger)
	if err = run(ctx, &app, configs.HTTPPort, logger); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	server, err := app.CreateServer(ctx)
	if err != nil {
		return err
	}
	e := echo.New()
	e.HideBanner = true
	server.Register(e)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
