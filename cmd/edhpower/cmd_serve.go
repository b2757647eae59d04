package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ramonehamilton/edh-power/internal/api"
	"github.com/ramonehamilton/edh-power/internal/config"
	"github.com/ramonehamilton/edh-power/internal/metrics"
	"github.com/ramonehamilton/edh-power/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var serveFlags struct {
	port      int
	noStorage bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve deck analysis and player submissions over HTTP.

The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.IntVarP(&serveFlags.port, "port", "p", 0, "Port to listen on (default from config)")
	f.BoolVar(&serveFlags.noStorage, "no-storage", false, "Run without a database; user endpoints answer 503")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveFlags.port > 0 {
		cfg.Server.Port = serveFlags.port
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	requestTimeout, err := cfg.GetRequestTimeout()
	if err != nil {
		return err
	}

	m := metrics.NewAnalysisMetrics()
	analyzer, err := buildAnalyzer(cfg, logger, m)
	if err != nil {
		return err
	}

	deps := api.Dependencies{Analyzer: analyzer, Stats: m}
	if !serveFlags.noStorage {
		svc, err := openStorage(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := svc.Close(); err != nil {
				logger.Warn("failed to close database", zap.Error(err))
			}
		}()
		deps.Users = svc
	}

	server := api.NewServer(&api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: requestTimeout,
	}, deps, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openStorage opens the configured sqlite database.
func openStorage(cfg *config.Config, logger *zap.Logger) (*storage.Service, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}

	dbConfig := storage.DefaultConfig(path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("database opened", zap.String("path", path), zap.Bool("auto_migrate", cfg.Database.AutoMigrate))
	return storage.NewService(db), nil
}
