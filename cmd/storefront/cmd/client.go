package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Sentinel-Gate/storefront/internal/adapter/outbound/storage"
	"github.com/Sentinel-Gate/storefront/internal/client/actions"
	"github.com/Sentinel-Gate/storefront/internal/client/api"
	"github.com/Sentinel-Gate/storefront/internal/client/state"
)

var (
	clientTrace     bool
	clientServerURL string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Drive the server from the command line",
	Long: `Run storefront operations against a server.

The client keeps the signed-in session, the cart, the shipping address and
the payment method in client.storage_path, so they survive between
invocations. "logout" and "reset" clear them.

Examples:
  storefront client login --email admin@example.com --password 123456
  storefront client products --keyword phone
  storefront client cart add <product-id> --qty 2
  storefront client checkout`,
	PersistentPreRunE:  openClientSession,
	PersistentPostRunE: closeClientSession,
}

func init() {
	clientCmd.PersistentFlags().BoolVar(&clientTrace, "trace", false, "Print a span for every operation to stderr")
	clientCmd.PersistentFlags().StringVar(&clientServerURL, "server", "", "API base URL (overrides client.server_url)")
	rootCmd.AddCommand(clientCmd)
}

// clientSession is the composition root of the client core: one store, its
// persistence bridge and the coordinators that dispatch into it.
type clientSession struct {
	store    *state.Store
	coord    *actions.Coordinator
	logger   *slog.Logger
	shutdown func(context.Context) error
}

var session *clientSession

func openClientSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(scopeClient)
	if err != nil {
		return err
	}
	if clientServerURL != "" {
		cfg.Client.ServerURL = clientServerURL
	}
	logger := newLogger(cfg)

	kv := storage.NewFileStore(cfg.Client.StoragePath, logger)
	store := state.NewStore(
		state.WithBridge(state.NewBridge(kv, logger)),
		state.WithStoreLogger(logger),
	)
	client := api.NewClient(cfg.Client.ServerURL,
		api.WithTimeout(cfg.ClientTimeout()),
		api.WithUserAgent("storefront/"+Version),
	)

	opts := []actions.Option{actions.WithLogger(logger)}
	shutdown := func(context.Context) error { return nil }
	if clientTrace {
		tp, err := newTracerProvider(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		opts = append(opts, actions.WithTracerProvider(tp))
		shutdown = tp.Shutdown
	}

	session = &clientSession{
		store:    store,
		coord:    actions.New(store, client, opts...),
		logger:   logger,
		shutdown: shutdown,
	}
	return nil
}

func closeClientSession(cmd *cobra.Command, args []string) error {
	if session == nil {
		return nil
	}
	err := session.shutdown(context.Background())
	session = nil
	return err
}

// newTracerProvider exports every span synchronously as JSON to w.
func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", "storefront-client"),
		attribute.String("service.version", Version),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func clientContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
