package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tair/favorites-service/internal/catalog"
	clientrepository "github.com/tair/favorites-service/internal/client/repository"
	clientcommand "github.com/tair/favorites-service/internal/client/usecase/command"
	clientquery "github.com/tair/favorites-service/internal/client/usecase/query"
	favoritedomain "github.com/tair/favorites-service/internal/favorite/domain"
	favoriterepository "github.com/tair/favorites-service/internal/favorite/repository"
	favoritecommand "github.com/tair/favorites-service/internal/favorite/usecase/command"
	favoritequery "github.com/tair/favorites-service/internal/favorite/usecase/query"
	"github.com/tair/favorites-service/internal/testutil"
	"github.com/tair/favorites-service/kafka"
	"github.com/tair/favorites-service/pkg/auth"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event kafka.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

type testServer struct {
	*httptest.Server
	db        *gorm.DB
	publisher *recordingPublisher
	registry  *prometheus.Registry
}

func newFakeCatalog(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			w.Write([]byte(`{"id":1,"title":"Test Product","price":10.0,"description":"d","category":"c","image":"https://example.com/1.jpg","rating":{"rate":4.1,"count":7}}`))
		case "/products/3":
			w.Write([]byte(`{"id":3,"title":"Backpack","price":109.95,"description":"d","category":"c","image":"https://example.com/3.jpg"}`))
		case "/products/5":
			w.WriteHeader(http.StatusInternalServerError)
		case "/products/10":
			w.Write([]byte(`{"id":10,"title":"Mug","price":7.5,"image":"img/10.jpg"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, limiter *LoginRateLimiter) *testServer {
	t.Helper()

	db := testutil.OpenTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	authenticator := auth.NewAuthenticator("test-secret", 30*time.Minute, auth.WithBcryptCost(bcrypt.MinCost))
	clients := clientrepository.NewGormClientRepository(db)
	ledger := favoriterepository.NewGormLedger(db)
	gateway := catalog.NewHTTPGateway(catalog.Options{
		BaseURLs:   []string{newFakeCatalog(t).URL},
		Timeout:    time.Second,
		HTTPClient: &http.Client{},
	})
	publisher := &recordingPublisher{}
	registry := prometheus.NewRegistry()

	handler := NewHandler(
		&CommandHandlers{
			RegisterClient: clientcommand.NewRegisterClientHandler(clients, authenticator),
			LoginClient:    clientcommand.NewLoginClientHandler(clients, authenticator),
			UpdateClient:   clientcommand.NewUpdateClientHandler(clients),
			DeleteClient:   clientcommand.NewDeleteClientHandler(clients, publisher),
			AddFavorite:    favoritecommand.NewAddFavoriteHandler(ledger, gateway, publisher),
			RemoveFavorite: favoritecommand.NewRemoveFavoriteHandler(ledger, publisher),
		},
		&QueryHandlers{
			GetClient:         clientquery.NewGetClientHandler(clients),
			CountClients:      clientquery.NewCountClientsHandler(clients),
			AuthenticateToken: clientquery.NewAuthenticateTokenHandler(clients, authenticator),
			ListFavorites:     favoritequery.NewListFavoritesHandler(ledger, gateway),
		},
		NewMetrics(registry),
	)

	router := NewRouter(handler, RouterConfig{
		RateLimiter:    limiter,
		DB:             sqlDB,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db, publisher: publisher, registry: registry}
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return s.do(t, method, path, token, reader, "application/json")
}

func (s *testServer) login(t *testing.T, email, password string) *http.Response {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	return s.do(t, http.MethodPost, "/token", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (s *testServer) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	resp := s.doJSON(t, http.MethodPost, "/clients/", "", `{"name":"John Doe","email":"`+email+`","password":"strongpassword"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.login(t, email, "strongpassword")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(t, resp, &token)
	require.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func detail(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body errorResponse
	decode(t, resp, &body)
	return body.Detail
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.doJSON(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body messageResponse
	decode(t, resp, &body)
	assert.Equal(t, "Favorites API", body.Message)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestRegisterClient(t *testing.T) {
	s := newTestServer(t, nil)
	payload := `{"name":"John Doe","email":"john.doe@example.com","password":"strongpassword"}`

	resp := s.doJSON(t, http.MethodPost, "/clients/", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "john.doe@example.com", body["email"])
	assert.Equal(t, "John Doe", body["name"])
	assert.NotNil(t, body["id"])
	for _, leaked := range []string{"password", "hashed_password", "Credential", "credential"} {
		assert.NotContains(t, body, leaked)
	}

	resp = s.doJSON(t, http.MethodPost, "/clients/", "", `{"name":"Other","email":"John.Doe@example.com","password":"another1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", detail(t, resp))
}

func TestRegisterClientWithoutTrailingSlash(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.doJSON(t, http.MethodPost, "/clients", "", `{"name":"Ana","email":"ana@x.io","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRegisterClientValidation(t *testing.T) {
	s := newTestServer(t, nil)

	for name, payload := range map[string]string{
		"malformed json": `{"name":`,
		"short password": `{"name":"Ana","email":"ana@x.io","password":"123"}`,
		"invalid email":  `{"name":"Ana","email":"ana","password":"secret1"}`,
		"missing name":   `{"email":"ana@x.io","password":"secret1"}`,
	} {
		resp := s.doJSON(t, http.MethodPost, "/clients/", "", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, name)
		assert.NotEmpty(t, detail(t, resp), name)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)
	s.registerAndLogin(t, "ana@x.io")

	for _, creds := range [][2]string{{"ana@x.io", "wrong-password"}, {"nobody@x.io", "strongpassword"}} {
		resp := s.login(t, creds[0], creds[1])
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		assert.Equal(t, "Incorrect email or password", detail(t, resp))
	}

	resp := s.login(t, "ana@x.io", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAuthenticationFailuresAreUniform(t *testing.T) {
	s := newTestServer(t, nil)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		resp := s.doJSON(t, http.MethodGet, "/clients/me", token, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
		assert.Equal(t, "Could not validate credentials", detail(t, resp))
	}

	resp := s.do(t, http.MethodGet, "/clients/me/favorites/", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSelfService(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "ana@x.io")
	s.registerAndLogin(t, "bo@x.io")

	resp := s.doJSON(t, http.MethodGet, "/clients/me", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]interface{}
	decode(t, resp, &me)
	assert.Equal(t, "ana@x.io", me["email"])

	resp = s.doJSON(t, http.MethodPut, "/clients/me", token, `{"name":"Ana Maria"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &me)
	assert.Equal(t, "Ana Maria", me["name"])
	assert.Equal(t, "ana@x.io", me["email"])

	resp = s.doJSON(t, http.MethodPut, "/clients/me", token, `{"email":"bo@x.io"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "This email is already in use.", detail(t, resp))

	resp = s.doJSON(t, http.MethodPut, "/clients/me", token, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeleteMeCascadesFavorites(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "ana@x.io")

	resp := s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, `{"product_id":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.doJSON(t, http.MethodDelete, "/clients/me", token, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	require.NoError(t, s.db.Model(&favoritedomain.Favorite{}).Count(&count).Error)
	assert.Zero(t, count)

	resp = s.doJSON(t, http.MethodGet, "/clients/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, []string{kafka.EventTypeFavoriteAdded, kafka.EventTypeClientDeleted}, s.publisher.types())
}

func TestFavoritesWorkflow(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "ana@x.io")

	resp := s.doJSON(t, http.MethodGet, "/clients/me/favorites/", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))

	resp = s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, `{"product_id":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var msg messageResponse
	decode(t, resp, &msg)
	assert.Equal(t, "Product added to favorites successfully", msg.Message)

	resp = s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, `{"product_id":1}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Product already in favorites.", detail(t, resp))

	resp = s.doJSON(t, http.MethodPost, "/clients/me/favorites", token, `{"product_id":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.doJSON(t, http.MethodGet, "/clients/me/favorites", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []catalog.Product
	decode(t, resp, &products)
	require.Len(t, products, 2)
	titles := []string{products[0].Title, products[1].Title}
	assert.ElementsMatch(t, []string{"Test Product", "Backpack"}, titles)

	resp = s.doJSON(t, http.MethodDelete, "/clients/me/favorites/1", token, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.doJSON(t, http.MethodDelete, "/clients/me/favorites/1", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Favorite product not found.", detail(t, resp))

	resp = s.doJSON(t, http.MethodGet, "/clients/me/favorites/", token, "")
	decode(t, resp, &products)
	require.Len(t, products, 1)
	assert.Equal(t, uint(3), products[0].ID)
}

func TestAddFavoriteAcceptsAnyServedProduct(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "ana@x.io")

	resp := s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, `{"product_id":10}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, `{"product_id":10}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAddFavoriteFailures(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "ana@x.io")

	resp := s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, `{"product_id":999}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product with id 999 not found.", detail(t, resp))

	resp = s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, `{"product_id":5}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", detail(t, resp))

	for _, payload := range []string{`{}`, `{"product_id":0}`, `{"product_id":-2}`, `{"product_id":"one"}`, `nope`} {
		resp = s.doJSON(t, http.MethodPost, "/clients/me/favorites/", token, payload)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, payload)
	}

	resp = s.doJSON(t, http.MethodDelete, "/clients/me/favorites/abc", token, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	assert.Empty(t, s.publisher.types())
}

func TestFavoritesAreScopedToClient(t *testing.T) {
	s := newTestServer(t, nil)
	ana := s.registerAndLogin(t, "ana@x.io")
	bo := s.registerAndLogin(t, "bo@x.io")

	resp := s.doJSON(t, http.MethodPost, "/clients/me/favorites/", ana, `{"product_id":1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.doJSON(t, http.MethodDelete, "/clients/me/favorites/1", bo, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.doJSON(t, http.MethodGet, "/clients/me/favorites/", bo, "")
	var products []catalog.Product
	decode(t, resp, &products)
	assert.Empty(t, products)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)
	s.registerAndLogin(t, "ana@x.io")

	resp := s.doJSON(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])

	resp = s.doJSON(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "favorites_registered_clients 1")
	assert.Contains(t, string(body), `favorites_http_requests_total{endpoint="/clients/",method="POST",status="201"} 1`)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.doJSON(t, http.MethodGet, "/clients/logged/favorites", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", detail(t, resp))
}

type failingPinger struct{ err error }

func (p failingPinger) PingContext(context.Context) error { return p.err }

func TestHealthCheckHidesPingError(t *testing.T) {
	h := NewHandler(&CommandHandlers{}, &QueryHandlers{}, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	h.HealthCheck(failingPinger{err: errors.New(`dial tcp db.internal:5432: connect: connection refused`)})(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "db.internal")
}
