package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"bookstore-admin/bookstore/internal/handler/api"
	"bookstore-admin/bookstore/internal/service"
	"bookstore-admin/bookstore/internal/uow"
	"bookstore-admin/bookstore/internal/uow/uowtest"
)

type testServer struct {
	*httptest.Server
	db    *gorm.DB
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newLoggedTestServer(t, nil)
}

func newLoggedTestServer(t *testing.T, log *zap.Logger) *testServer {
	t.Helper()
	db := uowtest.OpenDB(t)
	auth, err := service.NewAuthenticator("admin", "letmein!", "test-secret", time.Hour)
	require.NoError(t, err)

	r := chi.NewRouter()
	api.NewHandler(uow.NewFactory(uow.NewGormEngine(db)), auth, log).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ts := &testServer{Server: srv, db: db}
	var login struct {
		Token string `json:"token"`
	}
	resp := ts.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "letmein!"}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)
	ts.token = login.Token
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""

	resp := ts.do(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""
	resp := ts.do(t, http.MethodGet, "/api/authors", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ts.token = "not-a-jwt"
	resp = ts.do(t, http.MethodGet, "/api/authors", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogFlow(t *testing.T) {
	ts := newTestServer(t)

	var author struct {
		ID string `json:"id"`
	}
	resp := ts.do(t, http.MethodPost, "/api/authors", map[string]string{"first_name": "Ursula", "last_name": "Le Guin"}, &author)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/authors", map[string]string{"first_name": "Ursula", "last_name": "Le Guin"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var book struct {
		ID      string `json:"id"`
		Stock   int    `json:"stock"`
		Authors []struct {
			ID string `json:"id"`
		} `json:"authors"`
	}
	resp = ts.do(t, http.MethodPost, "/api/books", map[string]any{
		"title":         "The Left Hand of Darkness",
		"isbn":          "978-0441478125",
		"price_cents":   1899,
		"author_ids":    []string{author.ID},
		"initial_stock": 4,
	}, &book)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 4, book.Stock)
	require.Len(t, book.Authors, 1)

	var inv struct {
		Quantity int `json:"quantity"`
	}
	resp = ts.do(t, http.MethodPost, "/api/books/"+book.ID+"/inventory/adjustments", map[string]int{"delta": -5}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = ts.do(t, http.MethodPost, "/api/books/"+book.ID+"/inventory/adjustments", map[string]int{"delta": -1}, &inv)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, inv.Quantity)

	var books []struct {
		ID string `json:"id"`
	}
	resp = ts.do(t, http.MethodGet, "/api/books?author_id="+author.ID, nil, &books)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, books, 1)

	resp = ts.do(t, http.MethodDelete, "/api/books/"+book.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ts.do(t, http.MethodGet, "/api/books/"+book.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidBodyIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/books", map[string]any{
		"title":       "Unpriced",
		"isbn":        "978-0441478125",
		"price_cents": -10,
		"author_ids":  []string{"someone"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/customers", map[string]string{
		"first_name": "No", "last_name": "Mail", "email": "nope", "password": "long-enough",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStorageOutageIsServiceUnavailable(t *testing.T) {
	ts := newTestServer(t)

	sqlDB, err := ts.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := ts.do(t, http.MethodGet, "/api/authors", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFailuresAreLoggedWithAdmin(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ts := newLoggedTestServer(t, zap.New(core))

	sqlDB, err := ts.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := ts.do(t, http.MethodGet, "/api/books", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	entries := logs.FilterMessage("storage unavailable").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "admin", entries[0].ContextMap()["admin"])
}
