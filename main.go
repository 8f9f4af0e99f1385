package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/today-i-learned/cliparse"
	"github.com/danielhkuo/today-i-learned/middleware"
	"github.com/danielhkuo/today-i-learned/router"
	"github.com/danielhkuo/today-i-learned/store"
)

func main() {
	var err error

	// Optional .env for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))

	// Connect to the store
	st, closer, err := store.Open(store.Options{
		Type:        cfg.StoreType,
		DatabaseURL: cfg.DatabaseURL,
		RESTURL:     cfg.RESTURL,
		RESTKey:     cfg.RESTKey,
		Table:       cfg.Table,
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		slog.Error("store setup failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.Info("Store ready", "store", cfg.StoreType)

	// Create router
	mux, err := router.NewRouter(st, cfg)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight store calls settle
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
