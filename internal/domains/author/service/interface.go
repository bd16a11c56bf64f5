package service

import (
	"context"

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
)

// ServiceInterface is the author business layer. Requests are validated here,
// before anything reaches the repository.
type ServiceInterface interface {
	Create(ctx context.Context, req model.AuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id int) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, *model.PaginationMeta, error)
	// Update replaces the whole record.
	Update(ctx context.Context, id int, req model.AuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id int) error
	ListBooks(ctx context.Context, id int) ([]bookmodel.Book, error)
}
