package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/service"
	"bookstore-admin/bookstore/internal/uow"
)

type ListInput struct {
	PageParams
}

type CreateAuthorInput struct {
	Body service.AuthorInput
}

type UpdateAuthorInput struct {
	ID   string `path:"id"`
	Body service.AuthorPatch
}

type CreateCategoryInput struct {
	Body service.CategoryInput
}

type ListBooksInput struct {
	PageParams
	CategoryID string `query:"category_id"`
	AuthorID   string `query:"author_id"`
}

type CreateBookInput struct {
	Body service.BookInput
}

type UpdateBookInput struct {
	ID   string `path:"id"`
	Body service.BookPatch
}

type BookAuthorInput struct {
	ID       string `path:"id"`
	AuthorID string `path:"authorID"`
}

type CreateReviewInput struct {
	ID   string `path:"id"`
	Body service.ReviewInput
}

type ListReviewsInput struct {
	ID string `path:"id"`
	PageParams
}

type AdjustInventoryInput struct {
	ID   string `path:"id"`
	Body service.AdjustInventoryInput
}

func (h *Handler) registerAuthors(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-authors",
		Method:      http.MethodGet,
		Path:        "/api/authors",
		Summary:     "List authors",
	}, h.listAuthors)
	huma.Register(api, huma.Operation{
		OperationID:   "create-author",
		Method:        http.MethodPost,
		Path:          "/api/authors",
		Summary:       "Create author",
		DefaultStatus: http.StatusCreated,
	}, h.createAuthor)
	huma.Register(api, huma.Operation{
		OperationID: "get-author",
		Method:      http.MethodGet,
		Path:        "/api/authors/{id}",
		Summary:     "Get author",
	}, h.getAuthor)
	huma.Register(api, huma.Operation{
		OperationID: "update-author",
		Method:      http.MethodPatch,
		Path:        "/api/authors/{id}",
		Summary:     "Update author",
	}, h.updateAuthor)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-author",
		Method:        http.MethodDelete,
		Path:          "/api/authors/{id}",
		Summary:       "Delete author",
		DefaultStatus: http.StatusNoContent,
	}, h.deleteAuthor)
}

func (h *Handler) registerCategories(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "List categories",
	}, h.listCategories)
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/api/categories",
		Summary:       "Create category",
		DefaultStatus: http.StatusCreated,
	}, h.createCategory)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/api/categories/{id}",
		Summary:       "Delete category",
		DefaultStatus: http.StatusNoContent,
	}, h.deleteCategory)
}

func (h *Handler) registerBooks(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-books",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
	}, h.listBooks)
	huma.Register(api, huma.Operation{
		OperationID:   "create-book",
		Method:        http.MethodPost,
		Path:          "/api/books",
		Summary:       "Create book with its authors and stock",
		DefaultStatus: http.StatusCreated,
	}, h.createBook)
	huma.Register(api, huma.Operation{
		OperationID: "get-book",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
	}, h.getBook)
	huma.Register(api, huma.Operation{
		OperationID: "update-book",
		Method:      http.MethodPatch,
		Path:        "/api/books/{id}",
		Summary:     "Update book",
	}, h.updateBook)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-book",
		Method:        http.MethodDelete,
		Path:          "/api/books/{id}",
		Summary:       "Delete book",
		DefaultStatus: http.StatusNoContent,
	}, h.deleteBook)
	huma.Register(api, huma.Operation{
		OperationID: "link-book-author",
		Method:      http.MethodPut,
		Path:        "/api/books/{id}/authors/{authorID}",
		Summary:     "Add an author to a book",
	}, h.linkAuthor)
	huma.Register(api, huma.Operation{
		OperationID: "unlink-book-author",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}/authors/{authorID}",
		Summary:     "Remove an author from a book",
	}, h.unlinkAuthor)
	huma.Register(api, huma.Operation{
		OperationID: "list-reviews",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}/reviews",
		Summary:     "List reviews of a book",
	}, h.listReviews)
	huma.Register(api, huma.Operation{
		OperationID:   "create-review",
		Method:        http.MethodPost,
		Path:          "/api/books/{id}/reviews",
		Summary:       "Review a book",
		DefaultStatus: http.StatusCreated,
	}, h.createReview)
	huma.Register(api, huma.Operation{
		OperationID: "get-inventory",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}/inventory",
		Summary:     "Get stock of a book",
	}, h.getInventory)
	huma.Register(api, huma.Operation{
		OperationID: "adjust-inventory",
		Method:      http.MethodPost,
		Path:        "/api/books/{id}/inventory/adjustments",
		Summary:     "Add to or take from the stock of a book",
	}, h.adjustInventory)
}

// --- Authors ---

func (h *Handler) listAuthors(ctx context.Context, input *ListInput) (*Output[[]model.Author], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) ([]model.Author, error) {
		return service.ListAuthors(ctx, tx, input.options())
	})
}

func (h *Handler) createAuthor(ctx context.Context, input *CreateAuthorInput) (*Output[model.Author], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Author, error) {
		return service.CreateAuthor(ctx, tx, input.Body)
	})
}

func (h *Handler) getAuthor(ctx context.Context, input *IDInput) (*Output[model.Author], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Author, error) {
		return service.GetAuthor(ctx, tx, input.ID)
	})
}

func (h *Handler) updateAuthor(ctx context.Context, input *UpdateAuthorInput) (*Output[model.Author], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Author, error) {
		return service.UpdateAuthor(ctx, tx, input.ID, input.Body)
	})
}

func (h *Handler) deleteAuthor(ctx context.Context, input *IDInput) (*struct{}, error) {
	return exec(ctx, h, func(ctx context.Context, tx uow.Handle) error {
		return service.DeleteAuthor(ctx, tx, input.ID)
	})
}

// --- Categories ---

func (h *Handler) listCategories(ctx context.Context, input *ListInput) (*Output[[]model.Category], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) ([]model.Category, error) {
		return service.ListCategories(ctx, tx, input.options())
	})
}

func (h *Handler) createCategory(ctx context.Context, input *CreateCategoryInput) (*Output[model.Category], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Category, error) {
		return service.CreateCategory(ctx, tx, input.Body)
	})
}

func (h *Handler) deleteCategory(ctx context.Context, input *IDInput) (*struct{}, error) {
	return exec(ctx, h, func(ctx context.Context, tx uow.Handle) error {
		return service.DeleteCategory(ctx, tx, input.ID)
	})
}

// --- Books ---

func (h *Handler) listBooks(ctx context.Context, input *ListBooksInput) (*Output[[]model.Book], error) {
	filter := service.BookFilter{
		CategoryID:  input.CategoryID,
		AuthorID:    input.AuthorID,
		ListOptions: input.options(),
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) ([]model.Book, error) {
		return service.ListBooks(ctx, tx, filter)
	})
}

func (h *Handler) createBook(ctx context.Context, input *CreateBookInput) (*Output[service.BookDetail], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (service.BookDetail, error) {
		return service.CreateBook(ctx, tx, input.Body)
	})
}

func (h *Handler) getBook(ctx context.Context, input *IDInput) (*Output[service.BookDetail], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (service.BookDetail, error) {
		return service.GetBook(ctx, tx, input.ID)
	})
}

func (h *Handler) updateBook(ctx context.Context, input *UpdateBookInput) (*Output[model.Book], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Book, error) {
		return service.UpdateBook(ctx, tx, input.ID, input.Body)
	})
}

func (h *Handler) deleteBook(ctx context.Context, input *IDInput) (*struct{}, error) {
	return exec(ctx, h, func(ctx context.Context, tx uow.Handle) error {
		return service.DeleteBook(ctx, tx, input.ID)
	})
}

func (h *Handler) linkAuthor(ctx context.Context, input *BookAuthorInput) (*Output[service.BookDetail], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (service.BookDetail, error) {
		return service.LinkAuthor(ctx, tx, input.ID, input.AuthorID)
	})
}

func (h *Handler) unlinkAuthor(ctx context.Context, input *BookAuthorInput) (*Output[service.BookDetail], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (service.BookDetail, error) {
		return service.UnlinkAuthor(ctx, tx, input.ID, input.AuthorID)
	})
}

// --- Reviews ---

func (h *Handler) listReviews(ctx context.Context, input *ListReviewsInput) (*Output[[]model.Review], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) ([]model.Review, error) {
		return service.ListReviews(ctx, tx, input.ID, input.options())
	})
}

func (h *Handler) createReview(ctx context.Context, input *CreateReviewInput) (*Output[model.Review], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Review, error) {
		return service.CreateReview(ctx, tx, input.ID, input.Body)
	})
}

// --- Inventory ---

func (h *Handler) getInventory(ctx context.Context, input *IDInput) (*Output[model.Inventory], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Inventory, error) {
		return service.GetInventory(ctx, tx, input.ID)
	})
}

func (h *Handler) adjustInventory(ctx context.Context, input *AdjustInventoryInput) (*Output[model.Inventory], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Inventory, error) {
		return service.AdjustInventory(ctx, tx, input.ID, input.Body)
	})
}
