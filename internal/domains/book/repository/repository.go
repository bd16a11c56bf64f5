package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
)

// RepositoryInterface is the typed Book collection plus the AuthorBook join.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id int) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)

	// Delete removes the book; its AuthorBook rows cascade.
	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int64, error)

	// LinkAuthor inserts the join row.
	// Errors: ErrLinkTargetNotFound (foreign key), ErrAlreadyLinked (primary key).
	LinkAuthor(ctx context.Context, bookID, authorID int) error

	// UnlinkAuthor removes the join row. Errors: ErrLinkNotFound.
	UnlinkAuthor(ctx context.Context, bookID, authorID int) error

	ListAuthors(ctx context.Context, bookID int) ([]authormodel.Author, error)

	WithTx(tx *sqlx.Tx) RepositoryInterface
}
