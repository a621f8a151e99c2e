// Package app wires the favorites service's components together.
package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/catalog"
	clientdomain "github.com/tair/favorites-service/internal/client/domain"
	clientrepository "github.com/tair/favorites-service/internal/client/repository"
	clientcommand "github.com/tair/favorites-service/internal/client/usecase/command"
	clientquery "github.com/tair/favorites-service/internal/client/usecase/query"
	"github.com/tair/favorites-service/internal/config"
	httpdelivery "github.com/tair/favorites-service/internal/delivery/http"
	favoritedomain "github.com/tair/favorites-service/internal/favorite/domain"
	favoriterepository "github.com/tair/favorites-service/internal/favorite/repository"
	favoritecommand "github.com/tair/favorites-service/internal/favorite/usecase/command"
	favoritequery "github.com/tair/favorites-service/internal/favorite/usecase/query"
	"github.com/tair/favorites-service/kafka"
	"github.com/tair/favorites-service/pkg/auth"
)

// ProvideClientRepository provides the traced client repository
func ProvideClientRepository(db *gorm.DB) clientdomain.ClientRepository {
	return clientrepository.NewTracingClientRepository(clientrepository.NewGormClientRepository(db))
}

// ProvideLedger provides the traced favorites ledger
func ProvideLedger(db *gorm.DB) favoritedomain.Ledger {
	return favoriterepository.NewTracingLedger(favoriterepository.NewGormLedger(db))
}

// ProvideAuthenticator provides the password hasher and token issuer
func ProvideAuthenticator(cfg config.Config) *auth.Authenticator {
	return auth.NewAuthenticator(cfg.JWTSecret, cfg.AccessTokenTTL)
}

// ProvideCatalogGateway provides the catalog gateway with its metrics
func ProvideCatalogGateway(cfg config.Config, reg prometheus.Registerer) favoritedomain.Catalog {
	return catalog.NewHTTPGateway(catalog.Options{
		BaseURLs:        cfg.Catalog.BaseURLs,
		Timeout:         cfg.Catalog.Timeout,
		MaxConcurrency:  cfg.Catalog.MaxConcurrency,
		BreakerFailures: cfg.Catalog.BreakerFailures,
		BreakerCooldown: cfg.Catalog.BreakerCooldown,
		Metrics:         catalog.NewMetrics(reg),
	})
}

// ProvideClientEventPublisher adapts the Kafka publisher for client commands
func ProvideClientEventPublisher(p *kafka.Publisher) clientcommand.EventPublisher {
	return p
}

// ProvideFavoriteEventPublisher adapts the Kafka publisher for favorite commands
func ProvideFavoriteEventPublisher(p *kafka.Publisher) favoritecommand.EventPublisher {
	return p
}

// ProvideCommandHandlers provides all command handlers
func ProvideCommandHandlers(
	registerClient *clientcommand.RegisterClientHandler,
	loginClient *clientcommand.LoginClientHandler,
	updateClient *clientcommand.UpdateClientHandler,
	deleteClient *clientcommand.DeleteClientHandler,
	addFavorite *favoritecommand.AddFavoriteHandler,
	removeFavorite *favoritecommand.RemoveFavoriteHandler,
) *httpdelivery.CommandHandlers {
	return &httpdelivery.CommandHandlers{
		RegisterClient: registerClient,
		LoginClient:    loginClient,
		UpdateClient:   updateClient,
		DeleteClient:   deleteClient,
		AddFavorite:    addFavorite,
		RemoveFavorite: removeFavorite,
	}
}

// ProvideQueryHandlers provides all query handlers
func ProvideQueryHandlers(
	getClient *clientquery.GetClientHandler,
	countClients *clientquery.CountClientsHandler,
	authenticateToken *clientquery.AuthenticateTokenHandler,
	listFavorites *favoritequery.ListFavoritesHandler,
) *httpdelivery.QueryHandlers {
	return &httpdelivery.QueryHandlers{
		GetClient:         getClient,
		CountClients:      countClients,
		AuthenticateToken: authenticateToken,
		ListFavorites:     listFavorites,
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideClientRepository,
	ProvideLedger,
)

var CollaboratorSet = wire.NewSet(
	ProvideAuthenticator,
	wire.Bind(new(clientdomain.Authenticator), new(*auth.Authenticator)),
	ProvideCatalogGateway,
	ProvideClientEventPublisher,
	ProvideFavoriteEventPublisher,
)

var CommandHandlerSet = wire.NewSet(
	clientcommand.NewRegisterClientHandler,
	clientcommand.NewLoginClientHandler,
	clientcommand.NewUpdateClientHandler,
	clientcommand.NewDeleteClientHandler,
	favoritecommand.NewAddFavoriteHandler,
	favoritecommand.NewRemoveFavoriteHandler,
	ProvideCommandHandlers,
)

var QueryHandlerSet = wire.NewSet(
	clientquery.NewGetClientHandler,
	clientquery.NewCountClientsHandler,
	clientquery.NewAuthenticateTokenHandler,
	favoritequery.NewListFavoritesHandler,
	ProvideQueryHandlers,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CollaboratorSet,
	CommandHandlerSet,
	QueryHandlerSet,
)
