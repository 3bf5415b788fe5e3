package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leafline/leafline-backend/api/routes"
	"github.com/leafline/leafline-backend/internal/editor"
	location "github.com/leafline/leafline-backend/internal/locations"
	product "github.com/leafline/leafline-backend/internal/products"
	"github.com/leafline/leafline-backend/internal/storefront"
	"github.com/leafline/leafline-backend/pkg/auth/session"
	"github.com/leafline/leafline-backend/pkg/config"
	"github.com/leafline/leafline-backend/pkg/db"
	"github.com/leafline/leafline-backend/pkg/llm"
	"github.com/leafline/leafline-backend/pkg/logger"
	"github.com/leafline/leafline-backend/pkg/metrics"
	"github.com/leafline/leafline-backend/pkg/migrate"
	"github.com/leafline/leafline-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var completer llm.Completer
	if llmClient, err := llm.NewClient(context.Background(), cfg.LLM, logg); err != nil {
		logg.Warn(context.Background(), "llm client unavailable, ai strategies disabled")
	} else {
		completer = llmClient
	}

	registry := storefront.DefaultRegistry()
	validator := storefront.NewValidator(registry)
	generationMetrics := metrics.NewGenerationMetrics(prometheus.DefaultRegisterer)

	storefrontRepo := storefront.NewRepository(dbClient.DB(), logg)
	productRepo := product.NewRepository(dbClient.DB())
	locationRepo := location.NewRepository(dbClient.DB())
	templateStore := storefront.NewDBTemplateStore(dbClient.DB())
	enricher := storefront.NewEnricher(productRepo, locationRepo, storefrontRepo, logg)

	var storefrontService storefront.Service
	if completer != nil {
		storefrontService, err = storefront.NewService(
			storefrontRepo,
			templateStore,
			enricher,
			storefront.NewGenerator(completer, registry, validator, logg),
			storefront.NewParallelGenerator(completer, registry, cfg.Storefront.GroupTimeout, logg),
			validator,
			generationMetrics,
			logg,
			cfg.Storefront,
		)
	} else {
		storefrontService, err = storefront.NewService(
			storefrontRepo,
			templateStore,
			enricher,
			nil,
			nil,
			validator,
			generationMetrics,
			logg,
			cfg.Storefront,
		)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront service", err)
		os.Exit(1)
	}

	editorService, err := editor.NewService(storefrontRepo, registry, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create editor service", err)
		os.Exit(1)
	}

	productService, err := product.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			storefrontService,
			editorService,
			productService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
