package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/favorites-service/internal/catalog"
	"github.com/tair/favorites-service/internal/favorite/repository"
	"github.com/tair/favorites-service/internal/testutil"
)

func newCatalogServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		switch r.URL.Path {
		case "/products/3":
			w.Write([]byte(`{"id":3,"title":"Backpack","price":109.95,"rating":{"rate":3.9,"count":120}}`))
		case "/products/5":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListFavoritesRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	client := testutil.SeedClient(t, db, "Ana", "ana@x.io")
	ledger := repository.NewGormLedger(db)
	hits := 0
	srv := newCatalogServer(t, &hits)
	gateway := catalog.NewHTTPGateway(catalog.Options{BaseURLs: []string{srv.URL}, Timeout: time.Second, HTTPClient: &http.Client{}, MaxConcurrency: 1})
	handler := NewListFavoritesHandler(ledger, gateway)

	for _, id := range []uint{3, 999, 5} {
		_, err := ledger.Add(ctx, client.ID, id)
		require.NoError(t, err)
	}

	products, err := handler.Handle(ctx, ListFavoritesQuery{ClientID: client.ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, uint(3), products[0].ID)
	require.NotNil(t, products[0].Review)
	assert.Equal(t, 3.9, products[0].Review.Rate)

	_, err = ledger.Remove(ctx, client.ID, 3)
	require.NoError(t, err)

	products, err = handler.Handle(ctx, ListFavoritesQuery{ClientID: client.ID})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestListFavoritesEmptySkipsCatalog(t *testing.T) {
	db := testutil.OpenTestDB(t)
	client := testutil.SeedClient(t, db, "Ana", "ana@x.io")
	hits := 0
	srv := newCatalogServer(t, &hits)
	gateway := catalog.NewHTTPGateway(catalog.Options{BaseURLs: []string{srv.URL}, HTTPClient: &http.Client{}})

	products, err := NewListFavoritesHandler(repository.NewGormLedger(db), gateway).
		Handle(context.Background(), ListFavoritesQuery{ClientID: client.ID})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Zero(t, hits)
}
