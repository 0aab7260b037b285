package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/claes/teleflix/internal/catalog"
	"github.com/claes/teleflix/internal/config"
	apphttp "github.com/claes/teleflix/internal/http"
	"github.com/claes/teleflix/internal/logging"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

var (
	configPath string
	port       string
	apiURL     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "teleflix",
	Short:         "Web front-end for the Teleflix media catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "teleflix", version)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", envOr("TELEFLIX_CONFIG", "teleflix.yaml"), "YAML config file (optional)")
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&apiURL, "api-url", "", "catalog API base URL (overrides API_URL)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadConfig applies defaults, file, environment and flags in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, errors.Wrapf(err, "load %s", configPath)
	}
	cfg.ApplyEnv(os.Getenv)
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func serve(cfg config.Config) error {
	logging.Init(os.Stderr, cfg.LogLevel)

	target, err := url.Parse(cfg.APIURL)
	if err != nil {
		return errors.Wrap(err, "parse api url")
	}
	client := catalog.New(cfg.APIURL, cfg.RequestTimeout, catalog.WithCacheSize(cfg.CacheSizeMB<<20))
	mux := apphttp.NewServer(client,
		apphttp.WithSitePassword(cfg.SitePassword),
		apphttp.WithAPIProxy(target),
		apphttp.WithRecentLimit(cfg.RecentLimit),
	)

	addr := ":" + cfg.Port
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening", "addr", addr, "api", cfg.APIURL, "protected", cfg.SitePassword != "")
		if err := srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	}
	logging.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("graceful shutdown failed", "err", err)
		_ = srv.Close()
	}
	logging.Info("server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("teleflix failed", "err", err)
		os.Exit(1)
	}
}
