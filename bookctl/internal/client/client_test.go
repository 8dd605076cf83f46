package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestLogin(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, pathLogin, r.URL.Path)

		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Username != "admin" || body.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	})

	token, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	_, err = c.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequestsCarryToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a1","first_name":"Ursula","last_name":"Le Guin"}]`))
	})

	_, err := c.ListAuthors(context.Background(), Page{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	authors, err := c.WithToken("tok-1").ListAuthors(context.Background(), Page{})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Le Guin", authors[0].LastName)
}

func TestListBooksQuery(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "cat-1", q.Get("category_id"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.False(t, q.Has("offset"))
		assert.False(t, q.Has("author_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	books, err := c.ListBooks(context.Background(), BookFilter{CategoryID: "cat-1", Page: Page{Limit: 10}})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestProblemBecomesAPIError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/b1/inventory/adjustments", r.URL.Path)
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Conflict","status":409,"detail":"insufficient stock"}`))
	})

	_, err := c.WithToken("tok").AdjustInventory(context.Background(), "b1", -3)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "insufficient stock", apiErr.Detail)
	assert.Equal(t, "409 Conflict: insufficient stock", apiErr.Error())
}

func TestErrorWithoutProblemBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.WithToken("tok").CancelOrder(context.Background(), "o1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "503 Service Unavailable", apiErr.Error())
}
