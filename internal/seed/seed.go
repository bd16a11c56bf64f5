// Package seed inserts the initial catalog rows into an empty database.
package seed

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	authormodel "library-catalog/internal/domains/author/model"
	authorrepo "library-catalog/internal/domains/author/repository"
	bookmodel "library-catalog/internal/domains/book/model"
	bookrepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/apperror"
	pkgdb "library-catalog/pkg/database"
)

// Result reports what Run did.
type Result struct {
	Seeded   bool
	AuthorID int
	BookID   int
}

// InitialAuthor and InitialBook are inserted with fixed ids. They are not linked.
// BookID in Result is 0 when the book was already present.
var (
	InitialAuthor = authormodel.Author{
		ID:        1,
		FirstName: "George",
		LastName:  "Orwell",
		DOB:       "06/25/1903",
	}
	InitialBook = bookmodel.Book{
		ID:          1,
		Title:       "1984",
		Description: "A dystopian social science fiction novel",
		Published:   strPtr("1949"),
	}
)

// Run seeds an empty database in one transaction. When any author already
// exists nothing is written, and book 1 is only inserted when its id is free,
// so calling it on every startup is safe.
func Run(ctx context.Context, db *database.DB, authors authorrepo.RepositoryInterface, books bookrepo.RepositoryInterface) (Result, error) {
	result, err := pkgdb.WithTransactionResult(ctx, db.DB, func(tx *sqlx.Tx) (Result, error) {
		txAuthors := authors.WithTx(tx)
		txBooks := books.WithTx(tx)

		count, err := txAuthors.Count(ctx)
		if err != nil {
			return Result{}, err
		}
		if count > 0 {
			return Result{}, nil
		}

		author := InitialAuthor
		createdAuthor, err := txAuthors.Create(ctx, &author)
		if err != nil {
			return Result{}, err
		}
		if err := database.ResyncIdentity(ctx, db.Dialect, tx, database.TableAuthor, "Id"); err != nil {
			return Result{}, err
		}
		result := Result{Seeded: true, AuthorID: createdAuthor.ID}

		// Books outlive their authors, so book 1 may still be there.
		bookExists, err := txBooks.Exists(ctx, InitialBook.ID)
		if err != nil {
			return Result{}, err
		}
		if bookExists {
			return result, nil
		}

		book := InitialBook
		createdBook, err := txBooks.Create(ctx, &book)
		if err != nil {
			return Result{}, err
		}
		if err := database.ResyncIdentity(ctx, db.Dialect, tx, database.TableBook, "Id"); err != nil {
			return Result{}, err
		}
		result.BookID = createdBook.ID

		return result, nil
	})
	if err != nil {
		if apperror.IsPersistence(err) {
			return Result{}, err
		}
		return Result{}, apperror.Persistence("seed", err)
	}

	if result.Seeded {
		log.Info().
			Int("author_id", result.AuthorID).
			Int("book_id", result.BookID).
			Msg("[SEED] inserted initial catalog")
	} else {
		log.Debug().Msg("[SEED] catalog already populated, skipping")
	}

	return result, nil
}

func strPtr(s string) *string { return &s }
