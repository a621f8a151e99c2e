package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/app"
	clientrepository "github.com/tair/favorites-service/internal/client/repository"
	"github.com/tair/favorites-service/internal/config"
	grpcdelivery "github.com/tair/favorites-service/internal/delivery/grpc"
	httpdelivery "github.com/tair/favorites-service/internal/delivery/http"
	_ "github.com/tair/favorites-service/internal/docs"
	favoriterepository "github.com/tair/favorites-service/internal/favorite/repository"
	"github.com/tair/favorites-service/kafka"
	"github.com/tair/favorites-service/pkg/database"
	"github.com/tair/favorites-service/pkg/logger"
	"github.com/tair/favorites-service/pkg/tracing"
)

const serviceVersion = "1.0.0"

func main() {
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Strs("catalog_urls", cfg.Catalog.BaseURLs).
		Msg("Starting favorites service")

	shutdownTracer, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: serviceVersion,
		JaegerEndpoint: cfg.JaegerEndpoint,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	redisClient := connectRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := connectKafka(cfg)
	defer publisher.Close()

	handler, err := app.InitializeHTTPHandler(db, cfg, publisher, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	router := httpdelivery.NewRouter(handler, httpdelivery.RouterConfig{
		EnableLogging:  true,
		EnableTracing:  cfg.TracingEnabled,
		RateLimiter:    loginRateLimiter(cfg, redisClient),
		DB:             sqlDB,
		MetricsHandler: promhttp.Handler(),
		SwaggerHandler: httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")),
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthServer := grpcdelivery.NewHealthServer()
	grpcServer := grpcdelivery.NewServer(healthServer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return err
		}
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server started")
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		grpcdelivery.WatchDatabase(gctx, healthServer, sqlDB, 15*time.Second)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Logger.Info().Msg("Shutting down servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
		}
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Logger.Error().Err(err).Msg("Server stopped with error")
	}
	logger.Logger.Info().Msg("Favorites service stopped")
}

// migrate creates the clients table before the favorites table that references it
func migrate(db *gorm.DB) error {
	if err := clientrepository.NewGormClientRepository(db).AutoMigrate(); err != nil {
		return err
	}
	return favoriterepository.NewGormLedger(db).AutoMigrate()
}

// connectRedis returns nil when Redis is not configured or unreachable
func connectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Logger.Info().Msg("Redis not configured, login rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, login rate limiting disabled")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	return client
}

func loginRateLimiter(cfg config.Config, client *redis.Client) *httpdelivery.LoginRateLimiter {
	if client == nil {
		return nil
	}
	return httpdelivery.NewLoginRateLimiter(client, cfg.LoginRateLimit, cfg.LoginRateWindow)
}

// connectKafka returns nil when Kafka is not configured or unreachable; a nil publisher drops events
func connectKafka(cfg config.Config) *kafka.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("Kafka not configured, domain events disabled")
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka unavailable, domain events disabled")
		return nil
	}
	return publisher
}
