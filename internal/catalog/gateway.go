package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/tair/favorites-service/pkg/logger"
)

const maxBodyBytes = 1 << 20

var tracer = otel.Tracer("catalog-gateway")

// Options configures an HTTPGateway
type Options struct {
	BaseURLs []string
	// Timeout bounds every outbound request
	Timeout time.Duration
	// MaxConcurrency caps in-flight requests of one FetchMany; <= 0 means one per id
	MaxConcurrency  int
	BreakerFailures int
	BreakerCooldown time.Duration
	HTTPClient      *http.Client
	Metrics         *Metrics
}

// HTTPGateway talks to the catalog's GET /products/{id} endpoint. It keeps no cache.
type HTTPGateway struct {
	client         *http.Client
	balancer       *RoundRobin
	breaker        *CircuitBreaker
	timeout        time.Duration
	maxConcurrency int
	metrics        *Metrics
}

// NewHTTPGateway creates a catalog gateway
func NewHTTPGateway(opts Options) *HTTPGateway {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPGateway{
		client:         client,
		balancer:       NewRoundRobin(opts.BaseURLs),
		breaker:        NewCircuitBreaker("catalog", opts.BreakerFailures, opts.BreakerCooldown),
		timeout:        timeout,
		maxConcurrency: opts.MaxConcurrency,
		metrics:        opts.Metrics,
	}
}

// FetchOne looks a single product up. A product unknown to the catalog is a
// StatusNotFound lookup, not an error; every other failure wraps ErrCatalogUnavailable.
// An open breaker rejects the call without contacting the catalog.
func (g *HTTPGateway) FetchOne(ctx context.Context, productID uint) (Lookup, error) {
	return g.lookup(ctx, productID, true)
}

// FetchMany resolves every id concurrently and returns the products that could be
// served. Ids that are unknown, time out, fail in any other way or carry an invalid
// image are dropped. Lookups here bypass the breaker so ids stay independent.
func (g *HTTPGateway) FetchMany(ctx context.Context, productIDs []uint) []Product {
	ids := dedupe(productIDs)
	if len(ids) == 0 {
		return []Product{}
	}

	ctx, span := tracer.Start(ctx, "catalog.FetchMany",
		trace.WithAttributes(attribute.Int("product.count", len(ids))),
	)
	defer span.End()

	results := make([]*Product, len(ids))

	// Branches never return an error so that one failure cannot cancel its siblings
	var group errgroup.Group
	if g.maxConcurrency > 0 {
		group.SetLimit(g.maxConcurrency)
	}
	for i, id := range ids {
		group.Go(func() error {
			lookup, err := g.lookup(ctx, id, false)
			if err != nil {
				logger.Warn(ctx).Err(err).Uint("product_id", id).Msg("Dropping product from list")
				return nil
			}
			if !lookup.Found() {
				return nil
			}
			if !lookup.Product.hasValidImage() {
				logger.Warn(ctx).Uint("product_id", id).Str("image", lookup.Product.Image).Msg("Dropping product with invalid image from list")
				return nil
			}
			results[i] = lookup.Product
			return nil
		})
	}
	_ = group.Wait()

	products := make([]Product, 0, len(ids))
	for _, p := range results {
		if p != nil {
			products = append(products, *p)
		}
	}

	g.metrics.drop(len(ids) - len(products))
	span.SetAttributes(attribute.Int("product.resolved", len(products)))
	return products
}

func (g *HTTPGateway) lookup(ctx context.Context, productID uint, guarded bool) (Lookup, error) {
	ctx, span := tracer.Start(ctx, "catalog.lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int64("product.id", int64(productID))),
	)
	defer span.End()

	start := time.Now()
	var (
		lookup   Lookup
		fetchErr error
	)
	fetch := func() error {
		lookup, fetchErr = g.fetch(ctx, productID)
		// Bad product data says nothing about catalog health
		if errors.Is(fetchErr, errUpstreamFailure) {
			return fetchErr
		}
		return nil
	}

	var err error
	if guarded {
		err = g.breaker.Call(fetch)
	} else {
		err = fetch()
	}
	if err == nil {
		err = fetchErr
	}

	outcome := outcomeFound
	switch {
	case errors.Is(err, ErrCircuitOpen):
		outcome = outcomeCircuitOpen
		err = fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	case err != nil:
		outcome = outcomeError
	case !lookup.Found():
		outcome = outcomeNotFound
	}
	g.metrics.observe(outcome, time.Since(start).Seconds())
	span.SetAttributes(attribute.String("catalog.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Lookup{}, err
	}
	return lookup, nil
}

func (g *HTTPGateway) fetch(ctx context.Context, productID uint) (Lookup, error) {
	base := g.balancer.Next()
	if base == "" {
		return Lookup{}, fmt.Errorf("%w: no catalog url configured", ErrCatalogUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	url := base + "/products/" + strconv.FormatUint(uint64(productID), 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Lookup{}, fmt.Errorf("%w: %w: %v", ErrCatalogUnavailable, errUpstreamFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Lookup{}, fmt.Errorf("%w: %w: %v", ErrCatalogUnavailable, errUpstreamFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFound(), nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return Lookup{}, fmt.Errorf("%w: %w: status %d", ErrCatalogUnavailable, errUpstreamFailure, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Lookup{}, fmt.Errorf("%w: unexpected status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Lookup{}, fmt.Errorf("%w: %w: %v", ErrCatalogUnavailable, errUpstreamFailure, err)
	}

	// Some catalogs answer unknown ids with 200 and an empty body
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return notFound(), nil
	}

	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		return Lookup{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if product.ID != productID {
		return Lookup{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, errMalformedProduct)
	}

	return found(&product), nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
