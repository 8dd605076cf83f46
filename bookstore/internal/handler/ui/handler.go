package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/service"
	"bookstore-admin/bookstore/internal/uow"
)

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"cents": formatCents,
}

// formatCents renders an amount in cents as units.hundredths.
func formatCents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Handler serves the HTML admin console. Every page and form runs in its own
// unit of work, like the JSON API.
type Handler struct {
	factory   *uow.Factory
	log       *zap.Logger
	templates *template.Template
}

func NewHandler(factory *uow.Factory, log *zap.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{factory: factory, log: log, templates: tmpl}, nil
}

type bookRow struct {
	model.Book
	Stock int
}

type booksPage struct {
	Books   []bookRow
	Authors []model.Author
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/books", http.StatusFound)
	})
	r.Get("/books", h.books)
	r.Post("/books", h.createBook)
	r.Post("/books/{id}/stock", h.adjustStock)
	r.Post("/books/{id}/delete", h.deleteBook)

	r.Get("/orders", h.orders)
	r.Post("/orders/{id}/cancel", h.cancelOrder)
	return r
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error("render", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := h.log
	if claims, ok := service.ClaimsFromContext(r.Context()); ok {
		log = log.With(zap.String("admin", claims.Username))
	}
	switch {
	case service.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case service.IsNotFound(err):
		http.Error(w, "not found", http.StatusNotFound)
	case service.IsConflict(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case uow.IsStorageUnavailable(err):
		log.Error("storage unavailable", zap.Error(err))
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	default:
		log.Error("ui request failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// handleForm validates req, runs action in a unit of work and redirects on
// success.
func handleForm[T any](h *Handler, w http.ResponseWriter, r *http.Request, req T, action func(ctx context.Context, tx uow.Handle) error, redirect string) {
	if err := service.Validate(req); err != nil {
		h.fail(w, r, err)
		return
	}
	_, err := uow.Do(r.Context(), h.factory, func(ctx context.Context, tx uow.Handle) (struct{}, error) {
		return struct{}{}, action(ctx, tx)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// formInt reads an optional integer form field. Empty means zero.
func formInt(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", key)
	}
	return v, nil
}

func (h *Handler) books(w http.ResponseWriter, r *http.Request) {
	page, err := uow.Do(r.Context(), h.factory, func(ctx context.Context, tx uow.Handle) (booksPage, error) {
		books, err := service.ListBooks(ctx, tx, service.BookFilter{})
		if err != nil {
			return booksPage{}, err
		}
		rows := make([]bookRow, 0, len(books))
		for _, b := range books {
			inv, err := service.GetInventory(ctx, tx, b.ID)
			if err != nil && !service.IsNotFound(err) {
				return booksPage{}, err
			}
			rows = append(rows, bookRow{Book: b, Stock: inv.Quantity})
		}
		authors, err := service.ListAuthors(ctx, tx, repository.ListOptions{})
		if err != nil {
			return booksPage{}, err
		}
		return booksPage{Books: rows, Authors: authors}, nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, "books.html", page)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	price, err := formInt(r, "price_cents")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	stock, err := formInt(r, "initial_stock")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := service.BookInput{
		Title:        strings.TrimSpace(r.FormValue("title")),
		ISBN:         strings.TrimSpace(r.FormValue("isbn")),
		Description:  r.FormValue("description"),
		PriceCents:   price,
		AuthorIDs:    r.Form["author_id"],
		InitialStock: int(stock),
	}
	handleForm(h, w, r, req, func(ctx context.Context, tx uow.Handle) error {
		_, err := service.CreateBook(ctx, tx, req)
		return err
	}, "/ui/books")
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	delta, err := formInt(r, "delta")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := service.AdjustInventoryInput{Delta: int(delta)}
	handleForm(h, w, r, req, func(ctx context.Context, tx uow.Handle) error {
		_, err := service.AdjustInventory(ctx, tx, id, req)
		return err
	}, "/ui/books")
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	handleForm(h, w, r, struct{}{}, func(ctx context.Context, tx uow.Handle) error {
		return service.DeleteBook(ctx, tx, id)
	}, "/ui/books")
}

func (h *Handler) orders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	orders, err := uow.Do(r.Context(), h.factory, func(ctx context.Context, tx uow.Handle) ([]model.Order, error) {
		return service.ListOrders(ctx, tx, customerID, repository.ListOptions{Limit: 200})
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, "orders.html", struct {
		Orders     []model.Order
		CustomerID string
	}{orders, customerID})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	handleForm(h, w, r, struct{}{}, func(ctx context.Context, tx uow.Handle) error {
		_, err := service.CancelOrder(ctx, tx, id)
		return err
	}, "/ui/orders")
}
