package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const pathLogin = "/api/login"

var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx answer from the bookstore API.
type APIError struct {
	Status int
	Title  string
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Title)
}

type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type Client struct {
	resty *resty.Client
	token string
}

func New(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{resty: client}
}

// WithToken returns a client that sends token as bearer auth.
func (c *Client) WithToken(token string) *Client {
	return &Client{resty: c.resty, token: token}
}

func (c *Client) r(ctx context.Context) *resty.Request {
	req := c.resty.R().SetContext(ctx)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var result loginResponse
	req := c.resty.R().
		SetContext(ctx).
		SetBody(&loginRequest{Username: username, Password: password}).
		SetResult(&result)
	if err := send(req, http.MethodPost, pathLogin); err != nil {
		return "", err
	}
	return result.Token, nil
}

func (c *Client) ListAuthors(ctx context.Context, page Page) ([]Author, error) {
	return do[[]Author](c.r(ctx).SetQueryParams(page.query()), http.MethodGet, "/api/authors")
}

func (c *Client) CreateAuthor(ctx context.Context, in AuthorInput) (Author, error) {
	return do[Author](c.r(ctx).SetBody(in), http.MethodPost, "/api/authors")
}

func (c *Client) ListCategories(ctx context.Context, page Page) ([]Category, error) {
	return do[[]Category](c.r(ctx).SetQueryParams(page.query()), http.MethodGet, "/api/categories")
}

func (c *Client) CreateCategory(ctx context.Context, name string) (Category, error) {
	body := map[string]string{"name": name}
	return do[Category](c.r(ctx).SetBody(body), http.MethodPost, "/api/categories")
}

func (c *Client) ListBooks(ctx context.Context, f BookFilter) ([]Book, error) {
	q := f.Page.query()
	if f.CategoryID != "" {
		q["category_id"] = f.CategoryID
	}
	if f.AuthorID != "" {
		q["author_id"] = f.AuthorID
	}
	return do[[]Book](c.r(ctx).SetQueryParams(q), http.MethodGet, "/api/books")
}

func (c *Client) CreateBook(ctx context.Context, in BookInput) (BookDetail, error) {
	return do[BookDetail](c.r(ctx).SetBody(in), http.MethodPost, "/api/books")
}

func (c *Client) ListOrders(ctx context.Context, customerID string, page Page) ([]Order, error) {
	q := page.query()
	if customerID != "" {
		q["customer_id"] = customerID
	}
	return do[[]Order](c.r(ctx).SetQueryParams(q), http.MethodGet, "/api/orders")
}

func (c *Client) PlaceOrder(ctx context.Context, cartID, addressID string) (Order, error) {
	body := map[string]string{"cart_id": cartID, "address_id": addressID}
	return do[Order](c.r(ctx).SetBody(body), http.MethodPost, "/api/orders")
}

func (c *Client) CancelOrder(ctx context.Context, id string) (Order, error) {
	return do[Order](c.r(ctx), http.MethodPost, "/api/orders/"+url.PathEscape(id)+"/cancel")
}

func (c *Client) AdjustInventory(ctx context.Context, bookID string, delta int) (Inventory, error) {
	body := map[string]int{"delta": delta}
	path := "/api/books/" + url.PathEscape(bookID) + "/inventory/adjustments"
	return do[Inventory](c.r(ctx).SetBody(body), http.MethodPost, path)
}

func do[T any](req *resty.Request, method, path string) (T, error) {
	var out T
	if err := send(req.SetResult(&out), method, path); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func send(req *resty.Request, method, path string) error {
	var p problem
	resp, err := req.SetError(&p).Execute(method, path)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Title: p.Title, Detail: p.Detail}
		if apiErr.Title == "" {
			apiErr.Title = http.StatusText(resp.StatusCode())
		}
		return apiErr
	}
	return nil
}

type Page struct {
	Limit  int
	Offset int
}

func (p Page) query() map[string]string {
	q := map[string]string{}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	if p.Offset > 0 {
		q["offset"] = strconv.Itoa(p.Offset)
	}
	return q
}
