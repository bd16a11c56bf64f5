package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
)

// RepositoryInterface is the typed Author collection.
type RepositoryInterface interface {
	// Create inserts an author. A non-zero ID is kept (seed data),
	// otherwise the database assigns one.
	Create(ctx context.Context, a *model.Author) (*model.Author, error)

	// GetByID returns ErrAuthorNotFound when missing. Read-through cached.
	GetByID(ctx context.Context, id int) (*model.Author, error)

	// List returns one page plus the total matching the filter.
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Update replaces every writable column of a.ID.
	Update(ctx context.Context, a *model.Author) (*model.Author, error)

	// Delete removes the author; its AuthorBook rows cascade.
	Delete(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int64, error)

	// ListBooks returns the books linked to the author, ordered by id.
	ListBooks(ctx context.Context, authorID int) ([]bookmodel.Book, error)

	// WithTx binds the repository to tx. Cache writes are skipped inside it.
	WithTx(tx *sqlx.Tx) RepositoryInterface
}
