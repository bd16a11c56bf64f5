package service

import (
	"context"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
)

// ServiceInterface is the book business layer, including author links.
type ServiceInterface interface {
	Create(ctx context.Context, req model.BookRequest) (*model.Book, error)
	GetByID(ctx context.Context, id int) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, *model.PaginationMeta, error)
	Update(ctx context.Context, id int, req model.BookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int) error

	LinkAuthor(ctx context.Context, bookID, authorID int) error
	UnlinkAuthor(ctx context.Context, bookID, authorID int) error
	ListAuthors(ctx context.Context, bookID int) ([]authormodel.Author, error)
}
