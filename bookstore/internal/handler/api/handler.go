package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bookstore-admin/bookstore/internal/middleware"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/service"
	"bookstore-admin/bookstore/internal/uow"
)

const (
	apiTitle   = "Bookstore Admin API"
	apiVersion = "1.0.0"
)

type Handler struct {
	factory *uow.Factory
	auth    *service.Authenticator
	log     *zap.Logger
}

func NewHandler(factory *uow.Factory, auth *service.Authenticator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{factory: factory, auth: auth, log: log}
}

// --- Shared request/response types ---

type Output[T any] struct {
	Body T
}

type IDInput struct {
	ID string `path:"id"`
}

type PageParams struct {
	Limit  int `query:"limit" minimum:"0" maximum:"500" doc:"Maximum number of items, 0 for all"`
	Offset int `query:"offset" minimum:"0"`
}

func (p PageParams) options() repository.ListOptions {
	return repository.ListOptions{Limit: p.Limit, Offset: p.Offset}
}

type LoginInput struct {
	Body struct {
		Username string `json:"username" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

type LoginOutput struct {
	Body struct {
		Token string `json:"token"`
	}
}

// --- Register routes ---

func (h *Handler) RegisterRoutes(r chi.Router) {
	// Public endpoints
	r.Group(func(r chi.Router) {
		api := humachi.New(r, huma.DefaultConfig(apiTitle, apiVersion))
		huma.Register(api, huma.Operation{
			OperationID: "admin-login",
			Method:      http.MethodPost,
			Path:        "/api/login",
			Summary:     "Admin login",
		}, h.login)
	})

	// Admin endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminTokenAuth(h.auth))
		cfg := huma.DefaultConfig(apiTitle, apiVersion)
		cfg.OpenAPIPath = ""
		cfg.DocsPath = ""
		cfg.SchemasPath = ""
		api := humachi.New(r, cfg)

		h.registerAuthors(api)
		h.registerCategories(api)
		h.registerBooks(api)
		h.registerCustomers(api)
		h.registerCarts(api)
		h.registerOrders(api)
	})
}

// --- Handlers ---

func (h *Handler) login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	token, err := h.auth.Login(input.Body.Username, input.Body.Password)
	if err != nil {
		return nil, h.toHumaError(ctx, err)
	}
	resp := &LoginOutput{}
	resp.Body.Token = token
	return resp, nil
}

// run executes work in its own unit of work and wraps the result for huma.
func run[R any](ctx context.Context, h *Handler, work func(ctx context.Context, tx uow.Handle) (R, error)) (*Output[R], error) {
	out, err := uow.Do(ctx, h.factory, work)
	if err != nil {
		return nil, h.toHumaError(ctx, err)
	}
	return &Output[R]{Body: out}, nil
}

// exec is run for operations without a response body.
func exec(ctx context.Context, h *Handler, work func(ctx context.Context, tx uow.Handle) error) (*struct{}, error) {
	_, err := uow.Do(ctx, h.factory, func(ctx context.Context, tx uow.Handle) (struct{}, error) {
		return struct{}{}, work(ctx, tx)
	})
	if err != nil {
		return nil, h.toHumaError(ctx, err)
	}
	return nil, nil
}

// validated checks in before any transaction is opened.
func (h *Handler) validated(ctx context.Context, in any) error {
	if err := service.Validate(in); err != nil {
		return h.toHumaError(ctx, err)
	}
	return nil
}

// logger tags log lines with the admin making the request.
func (h *Handler) logger(ctx context.Context) *zap.Logger {
	if claims, ok := service.ClaimsFromContext(ctx); ok {
		return h.log.With(zap.String("admin", claims.Username))
	}
	return h.log
}

func (h *Handler) toHumaError(ctx context.Context, err error) error {
	switch {
	case service.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case service.IsAuth(err):
		return huma.Error401Unauthorized("unauthorized")
	case service.IsNotFound(err):
		return huma.Error404NotFound("not found")
	case service.IsConflict(err):
		return huma.Error409Conflict(err.Error())
	case uow.IsStorageUnavailable(err):
		h.logger(ctx).Error("storage unavailable", zap.Error(err))
		return huma.Error503ServiceUnavailable("storage unavailable")
	}
	h.logger(ctx).Error("request failed", zap.Error(err))
	return huma.Error500InternalServerError("internal error")
}
