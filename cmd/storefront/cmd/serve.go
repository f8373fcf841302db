package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"

	"github.com/spf13/cobra"

	httpadapter "github.com/Sentinel-Gate/storefront/internal/adapter/inbound/http"
	"github.com/Sentinel-Gate/storefront/internal/adapter/outbound/sqlite"
	"github.com/Sentinel-Gate/storefront/internal/config"
	"github.com/Sentinel-Gate/storefront/internal/domain/auth"
	"github.com/Sentinel-Gate/storefront/internal/service"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the storefront HTTP API.

The server listens on server.http_addr (default 127.0.0.1:5000) and stores
users, products and orders in the SQLite file at database.path.

Examples:
  # Start with config file settings
  storefront serve

  # Development mode with a built-in JWT secret
  storefront --dev serve --addr 127.0.0.1:8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.http_addr)")
	rootCmd.AddCommand(serveCmd)
}

// app is the wired server side: store, services and HTTP server.
type app struct {
	db       *sqlite.Store
	users    *service.UserService
	products *service.ProductService
	orders   *service.OrderService
	server   *httpadapter.Server
}

// buildApp opens the database and wires every server component.
func buildApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.TokenTTLDuration())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	a := &app{
		db:       db,
		users:    service.NewUserService(db, tokens, logger),
		products: service.NewProductService(db, cfg.Server.PageSize, logger),
		orders:   service.NewOrderService(db, db, logger),
	}

	reg, metrics := httpadapter.NewRegistry()
	api := httpadapter.NewAPIHandler(
		httpadapter.WithUserService(a.users),
		httpadapter.WithProductService(a.products),
		httpadapter.WithOrderService(a.orders),
		httpadapter.WithAPIMetrics(metrics),
		httpadapter.WithAPILogger(logger),
	)
	a.server = httpadapter.NewServer(api,
		httpadapter.WithAddr(cfg.Server.HTTPAddr),
		httpadapter.WithLogger(logger),
		httpadapter.WithMetrics(reg, metrics),
		httpadapter.WithHealthChecker(httpadapter.NewHealthChecker(db, Version)),
	)
	return a, nil
}

// Close releases the database.
func (a *app) Close() error {
	return a.db.Close()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(scopeServer)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.HTTPAddr = serveAddr
	}

	logger := newLogger(cfg)
	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Info("loaded config", "file", configFile)
	}

	// stop() restores default signal handling so a second Ctrl+C does a hard kill.
	ctx, stop := signal.NotifyContext(context.Background(), gracefulSignals()...)
	go func() {
		<-ctx.Done()
		stop()
	}()

	a, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	logger.Info("storefront starting", "version", Version, "database", cfg.Database.Path)
	if err := a.server.Start(ctx); err != nil {
		return err
	}
	logger.Info("storefront stopped")
	return nil
}
