package catalog

import (
	"errors"
	"net/url"
)

// ErrCatalogUnavailable covers every transport level failure talking to the catalog:
// connection errors, timeouts, 5xx and unexpected statuses, malformed bodies and an open breaker.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

var (
	errMalformedProduct = errors.New("malformed product")
	// errUpstreamFailure marks failures that count against the circuit breaker:
	// transport errors and 5xx responses
	errUpstreamFailure = errors.New("catalog upstream failure")
)

// Review is the catalog's aggregate rating of a product
type Review struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a read-through projection of a catalog item; it is never persisted
type Product struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Review      *Review `json:"rating,omitempty"`
}

// hasValidImage reports whether image is empty or an absolute URI. Listed products need it.
func (p *Product) hasValidImage() bool {
	if p.Image == "" {
		return true
	}
	u, err := url.ParseRequestURI(p.Image)
	return err == nil && u.Host != ""
}

// Status distinguishes a found product from a product the catalog does not know
type Status int

const (
	StatusNotFound Status = iota
	StatusFound
)

// Lookup is the non-error outcome of a single product lookup
type Lookup struct {
	Status  Status
	Product *Product
}

// Found reports whether the lookup resolved a product
func (l Lookup) Found() bool {
	return l.Status == StatusFound && l.Product != nil
}

func found(p *Product) Lookup {
	return Lookup{Status: StatusFound, Product: p}
}

func notFound() Lookup {
	return Lookup{Status: StatusNotFound}
}
