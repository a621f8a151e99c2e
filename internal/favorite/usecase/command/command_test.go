package command

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/favorites-service/internal/catalog"
	"github.com/tair/favorites-service/internal/favorite/domain"
	"github.com/tair/favorites-service/internal/favorite/repository"
	"github.com/tair/favorites-service/internal/testutil"
	"github.com/tair/favorites-service/kafka"
)

type stubCatalog struct {
	products map[uint]catalog.Product
	err      error
	calls    int64
}

func (c *stubCatalog) FetchOne(_ context.Context, id uint) (catalog.Lookup, error) {
	atomic.AddInt64(&c.calls, 1)
	if c.err != nil {
		return catalog.Lookup{}, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return catalog.Lookup{Status: catalog.StatusNotFound}, nil
	}
	return catalog.Lookup{Status: catalog.StatusFound, Product: &p}, nil
}

func (c *stubCatalog) FetchMany(context.Context, []uint) []catalog.Product {
	return nil
}

// racingLedger reports the pair absent and then loses the insert
type racingLedger struct {
	domain.Ledger
	addCalls int
}

func (l *racingLedger) Contains(context.Context, uint, uint) (bool, error) { return false, nil }

func (l *racingLedger) Add(context.Context, uint, uint) (*domain.Favorite, error) {
	l.addCalls++
	return nil, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func newCatalog() *stubCatalog {
	return &stubCatalog{products: map[uint]catalog.Product{
		1: {ID: 1, Title: "Test Product", Price: 10},
		3: {ID: 3, Title: "Backpack", Price: 109.95},
	}}
}

func TestAddFavorite(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	client := testutil.SeedClient(t, db, "Ana", "ana@x.io")
	ledger := repository.NewGormLedger(db)
	publisher := &recordingPublisher{}
	handler := NewAddFavoriteHandler(ledger, newCatalog(), publisher)

	fav, err := handler.Handle(ctx, AddFavoriteCommand{ClientID: client.ID, ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(1), fav.ProductID)

	_, err = handler.Handle(ctx, AddFavoriteCommand{ClientID: client.ID, ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrFavoriteAlreadyExists)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.EventTypeFavoriteAdded, publisher.events[0].EventType)
	assert.Equal(t, uint(1), publisher.events[0].ProductID)
}

func TestAddFavoriteUnknownProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	client := testutil.SeedClient(t, db, "Ana", "ana@x.io")
	ledger := repository.NewGormLedger(db)

	_, err := NewAddFavoriteHandler(ledger, newCatalog(), nil).
		Handle(ctx, AddFavoriteCommand{ClientID: client.ID, ProductID: 999})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	ids, err := ledger.ListProductIDs(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAddFavoriteNotFoundWinsOverDuplicate(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	client := testutil.SeedClient(t, db, "Ana", "ana@x.io")
	ledger := repository.NewGormLedger(db)
	_, err := ledger.Add(ctx, client.ID, 999)
	require.NoError(t, err)

	_, err = NewAddFavoriteHandler(ledger, newCatalog(), nil).
		Handle(ctx, AddFavoriteCommand{ClientID: client.ID, ProductID: 999})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAddFavoriteCatalogUnavailable(t *testing.T) {
	cat := &stubCatalog{err: catalog.ErrCatalogUnavailable}
	ledger := &racingLedger{}

	_, err := NewAddFavoriteHandler(ledger, cat, nil).
		Handle(context.Background(), AddFavoriteCommand{ClientID: 1, ProductID: 3})
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
	assert.Zero(t, ledger.addCalls)
}

func TestAddFavoriteLostRaceIsConflict(t *testing.T) {
	ledger := &racingLedger{}
	publisher := &recordingPublisher{}

	_, err := NewAddFavoriteHandler(ledger, newCatalog(), publisher).
		Handle(context.Background(), AddFavoriteCommand{ClientID: 1, ProductID: 3})
	assert.ErrorIs(t, err, domain.ErrFavoriteAlreadyExists)
	assert.Equal(t, 1, ledger.addCalls)
	assert.Empty(t, publisher.events)
}

func TestAddFavoriteRejectsZeroProduct(t *testing.T) {
	cat := newCatalog()
	_, err := NewAddFavoriteHandler(&racingLedger{}, cat, nil).
		Handle(context.Background(), AddFavoriteCommand{ClientID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidProductID)
	assert.Zero(t, cat.calls)
}

func TestConcurrentAddsSucceedOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	client := testutil.SeedClient(t, db, "Ana", "ana@x.io")
	handler := NewAddFavoriteHandler(repository.NewGormLedger(db), newCatalog(), nil)

	var successes, conflicts int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(ctx, AddFavoriteCommand{ClientID: client.ID, ProductID: 3})
			switch {
			case err == nil:
				atomic.AddInt64(&successes, 1)
			case errors.Is(err, domain.ErrFavoriteAlreadyExists):
				atomic.AddInt64(&conflicts, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes)
	assert.Equal(t, int64(9), conflicts)
}

func TestRemoveFavorite(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	client := testutil.SeedClient(t, db, "Ana", "ana@x.io")
	ledger := repository.NewGormLedger(db)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	handler := NewRemoveFavoriteHandler(ledger, publisher)

	_, err := ledger.Add(ctx, client.ID, 3)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, RemoveFavoriteCommand{ClientID: client.ID, ProductID: 3}))
	require.Len(t, publisher.events, 1)
	assert.Equal(t, kafka.EventTypeFavoriteRemoved, publisher.events[0].EventType)

	err = handler.Handle(ctx, RemoveFavoriteCommand{ClientID: client.ID, ProductID: 3})
	assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
}
