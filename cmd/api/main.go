package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dermacart/dermacart-backend/api/routes"
	"github.com/dermacart/dermacart-backend/internal/cart"
	"github.com/dermacart/dermacart-backend/internal/compare"
	"github.com/dermacart/dermacart-backend/internal/newsletter"
	"github.com/dermacart/dermacart-backend/internal/orders"
	product "github.com/dermacart/dermacart-backend/internal/products"
	"github.com/dermacart/dermacart-backend/pkg/config"
	"github.com/dermacart/dermacart-backend/pkg/db"
	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/logger"
	"github.com/dermacart/dermacart-backend/pkg/metrics"
	"github.com/dermacart/dermacart-backend/pkg/redis"
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

	if cfg.FeatureFlags.AutoMigrate {
		err := dbClient.DB().AutoMigrate(
			&models.Product{},
			&models.ProductDiscountTier{},
			&models.Order{},
			&models.OrderLineItem{},
			&models.NewsletterSubscription{},
		)
		if err != nil {
			logg.Error(context.Background(), "failed to run schema auto-migration", err)
			os.Exit(1)
		}
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

	productService, err := product.NewService(product.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(
		cart.NewRedisStore(redisClient, cfg.Cart.TTL),
		productService,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	compareService, err := compare.NewService(compare.NewRedisStore(redisClient, cfg.Cart.CompareTTL))
	if err != nil {
		logg.Error(context.Background(), "failed to create compare service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, cartService, productService, orders.NewRedisSequence(redisClient))
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

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
			httpMetrics,
			productService,
			cartService,
			compareService,
			newsletterService,
			orderService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
