package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinjudd/scoreboard/config"
	"github.com/justinjudd/scoreboard/models/storm"
	"github.com/justinjudd/scoreboard/server"
	"github.com/justinjudd/scoreboard/session"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("unable to load configuration", "err", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, err := storm.NewStorageEngine(cfg.Database)
	if err != nil {
		logger.Error("unable to open database", "path", cfg.Database, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions := session.NewManager(store,
		session.WithLogger(logger),
		session.WithUndoLimit(cfg.UndoLimit),
	)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(store, sessions, server.WithLogger(logger), server.WithDefaultFormat(cfg.DefaultFormat)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "listen", cfg.Listen, "database", cfg.Database)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		logger.Error("unable to shut down cleanly", "err", err)
	}
	sessions.Wait()
	logger.Info("server stopped")
}
