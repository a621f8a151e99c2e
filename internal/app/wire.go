//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/config"
	httpdelivery "github.com/tair/favorites-service/internal/delivery/http"
	"github.com/tair/favorites-service/kafka"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, cfg config.Config, publisher *kafka.Publisher, reg prometheus.Registerer) (*httpdelivery.Handler, error) {
	wire.Build(
		AllHandlersSet,
		httpdelivery.NewMetrics,
		httpdelivery.NewHandler,
	)
	return nil, nil
}
