// Command products serves the products collection on /products.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/collections/internal/adapters/http/api"
	"github.com/okian/collections/internal/adapters/http/swagger"
	"github.com/okian/collections/internal/adapters/repository"
	app "github.com/okian/collections/internal/app"
	"github.com/okian/collections/internal/config"
	"github.com/okian/collections/internal/domain/model"
	"github.com/okian/collections/internal/server"
	"github.com/okian/collections/pkg/logger"
)

const serviceName = "products"

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, configOptions()...)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named(serviceName)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	srv := server.New(serviceName, cfg.Addr, newHandler(ctx, cfg, log), log)
	if err := srv.Run(ctx); err != nil {
		log.Error(ctx, "server failed", logger.Error(err))
		os.Exit(1)
	}
}

func configOptions() []config.Option {
	return []config.Option{
		config.WithEnvPrefix("PRODUCTS"),
		config.WithCORSEnabled(true),
	}
}

// newHandler builds the products store, service and routes.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) http.Handler {
	storeOpts := []repository.Option[model.Product]{repository.WithName[model.Product](app.ProductsCollection)}
	if cfg.Seed {
		storeOpts = append(storeOpts, repository.WithSeed(model.SeedProducts()...))
	}
	products := app.NewProductService(repository.NewMemoryStore(storeOpts...), app.WithLogger(log))

	apiServer := api.NewServer(
		api.WithProducts(products),
		api.WithCORS(cfg.CORSEnabled, cfg.CORSAllowedOrigins...),
		api.WithLogger(log),
	)
	mux := http.NewServeMux()
	apiServer.Register(ctx, mux)
	if cfg.DocsEnabled {
		swagger.Register(ctx, mux)
	}
	return apiServer.Handler(mux)
}
