package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/favorites-service/pkg/logger"
)

// ServiceName is the name reported by the health service alongside the overall status
const ServiceName = "favorites.v1.FavoritesService"

// Pinger reports whether a backing store is reachable; *sql.DB satisfies it
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewServer creates the gRPC server with tracing, interceptors, health and reflection registered
func NewServer(healthServer *health.Server) *grpc.Server {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
		),
	)

	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)
	return server
}

// NewHealthServer creates a health server that starts out NOT_SERVING
func NewHealthServer() *health.Server {
	hs := health.NewServer()
	setStatus(hs, healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

// WatchDatabase keeps the health status in line with the database until ctx is done
func WatchDatabase(ctx context.Context, hs *health.Server, db Pinger, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Database ping failed")
			setStatus(hs, healthpb.HealthCheckResponse_NOT_SERVING)
			return
		}
		setStatus(hs, healthpb.HealthCheckResponse_SERVING)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			check()
		}
	}
}

func setStatus(hs *health.Server, s healthpb.HealthCheckResponse_ServingStatus) {
	hs.SetServingStatus("", s)
	hs.SetServingStatus(ServiceName, s)
}
