/*
Package main is the entry point for the room chat application.

In server mode it loads configuration, initializes the global logging system, serves the
REST API and the live feed, and handles interrupt signals (SIGINT, SIGTERM) with a graceful
shutdown. In client mode it runs the interactive terminal client against a server.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"roomchat/internal/app/chat"
	"roomchat/internal/app/feed"
	"roomchat/internal/cli"
	"roomchat/internal/configs"
	"roomchat/internal/handler"
	"roomchat/internal/pkg/limiter"
	"roomchat/internal/pkg/logx"
)

const (
	modeServer = "server"
	modeClient = "client"
)

func main() {
	mode := flag.String("mode", modeServer, "run mode: server or client")
	host := flag.String("host", "", "IPv4 address to listen on (server) or connect to (client); overrides HOST")
	port := flag.Int("port", 0, "port to listen on or connect to; overrides PORT")
	flag.Parse()

	// Load configuration from .env and environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Invalid arguments: %v\n", err)
		os.Exit(1)
	}

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case modeServer:
		logx.InitGlobalLogger(logx.Options{Development: cfg.IsDevelopment(), Component: modeServer})
		runServer(ctx, cfg)

	case modeClient:
		logx.InitGlobalLogger(logx.Options{Development: cfg.IsDevelopment(), Component: modeClient, Quiet: true})
		if err := runClient(ctx, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			stop()
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "FATAL: Unknown mode %q, expected %q or %q\n", *mode, modeServer, modeClient)
		os.Exit(2)
	}
}

func runServer(ctx context.Context, cfg *configs.AppConfig) {
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Str("addr", cfg.Addr()).
		Strs("allowed_origins", cfg.Origins()).
		Msg("Configuration loaded successfully")

	store := chat.NewStore()
	hub := feed.NewHub()
	store.OnPost(hub.Publish)

	perIP := limiter.NewIPRateLimiter(
		rate.Limit(float64(cfg.RateLimitPerMinute)/60),
		cfg.RateLimitBurst,
		limiter.DefaultCleanupInterval,
	)
	defer perIP.Close()

	router := handler.Router(&handler.AppDeps{
		Store:   store,
		Feed:    hub,
		Limiter: perIP,
		Config:  cfg,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logx.Info("Chat server starting", "url", cfg.BaseURL())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logx.Fatal(err, "Server failed to start")
	case <-ctx.Done():
	}
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	// hijacked feed connections are not tracked by Shutdown, close them explicitly
	hub.Shutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
		return
	}

	stats := store.Stats()
	logx.Info("Server gracefully stopped.", "users", stats.Users, "rooms", stats.Rooms)
}

func runClient(ctx context.Context, cfg *configs.AppConfig) error {
	client := cli.New(cli.Options{
		BaseURL: cfg.BaseURL(),
		Timeout: cfg.ClientTimeout,
		In:      os.Stdin,
		Out:     os.Stdout,
	})

	return client.Run(ctx)
}
