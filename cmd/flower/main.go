package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/flower/internal/config"
	"github.com/eugenenazirov/flower/internal/logging"
	"github.com/eugenenazirov/flower/internal/settings"
	"github.com/eugenenazirov/flower/internal/web"
)

var signalNotify = signal.Notify

const shutdownGracePeriod = 10 * time.Second

func main() {
	result, err := config.Resolve(os.Args[1:], os.Environ())
	if err != nil {
		panic(fmt.Sprintf("failed to resolve configuration: %v", err))
	}

	st, err := settings.Assemble(result.Options)
	if err != nil {
		panic(fmt.Sprintf("failed to assemble settings: %v", err))
	}

	logger, err := logging.New(st.Debug)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	if len(result.MisplacedFlags) > 0 {
		logger.Warn("worker flags were incorrectly specified after the flower command; specify them before it instead",
			zap.Strings("flags", result.MisplacedFlags))
	}

	app, err := web.New(st, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), shutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
