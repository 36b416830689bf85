package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/payportal/payportal/internal/config"
	"github.com/payportal/payportal/internal/infra"
	"github.com/payportal/payportal/internal/logging"
	"github.com/payportal/payportal/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	var db *mongo.Database
	if cfg.MongoURL != "" {
		client, err := infra.NewMongoClient(ctx, cfg.MongoURL)
		if err != nil {
			logger.Error("connect mongo", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("disconnect mongo", "error", err)
			}
		}()
		db = client.Database(cfg.MongoDB)
	} else {
		logger.Warn("MONGO_URL not set, using in-memory stores", "env", cfg.AppEnv)
	}

	srv, err := server.New(cfg, db, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	if !cfg.TLSEnabled() {
		logger.Warn("no certificate material configured, serving plain HTTP", "env", cfg.AppEnv)
	}

	srvErrCh := make(chan error, 2)
	go func() {
		srvErrCh <- srv.Listen()
	}()
	if cfg.TLSEnabled() {
		go func() {
			srvErrCh <- srv.ListenRedirect()
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
