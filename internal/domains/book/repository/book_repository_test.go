package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/testutil"
)

func strPtr(s string) *string { return &s }

func insertAuthor(t *testing.T, db *database.DB, first, last string) int {
	t.Helper()
	var id int
	err := db.QueryRowxContext(context.Background(),
		`INSERT INTO "Author" ("FirstName", "LastName") VALUES (?, ?) RETURNING "Id"`, first, last).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestRepository_CreateGetList(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.NewTestDB(t), nil, time.Minute)

	created, err := repo.Create(ctx, &model.Book{Title: "1984", Description: "Dystopia", Published: strPtr("1949")})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Published)
	assert.Equal(t, "1949", *got.Published)

	_, err = repo.Create(ctx, &model.Book{Title: "Brave New World", Description: "Dystopia"})
	require.NoError(t, err)

	books, total, err := repo.List(ctx, model.BookFilter{Search: "world", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, books, 1)
	assert.Nil(t, books[0].Published)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestRepository_UpdateReplacesOptionalFields(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.NewTestDB(t), nil, time.Minute)

	created, err := repo.Create(ctx, &model.Book{Title: "1984", Description: "d", Published: strPtr("1949")})
	require.NoError(t, err)

	_, err = repo.Update(ctx, &model.Book{ID: created.ID, Title: "Nineteen Eighty-Four", Description: "d"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nineteen Eighty-Four", got.Title)
	assert.Nil(t, got.Published)

	_, err = repo.Update(ctx, &model.Book{ID: 555, Title: "x", Description: "y"})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestRepository_LinkAuthor(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewRepository(db, nil, time.Minute)

	authorID := insertAuthor(t, db, "George", "Orwell")
	book, err := repo.Create(ctx, &model.Book{Title: "1984", Description: "d"})
	require.NoError(t, err)

	require.NoError(t, repo.LinkAuthor(ctx, book.ID, authorID))

	err = repo.LinkAuthor(ctx, book.ID, authorID)
	assert.ErrorIs(t, err, model.ErrAlreadyLinked)
	assert.True(t, apperror.IsPersistence(err))

	authors, err := repo.ListAuthors(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Orwell, George", authors[0].FullName())
}

func TestRepository_LinkRejectsMissingTargets(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewRepository(db, nil, time.Minute)

	authorID := insertAuthor(t, db, "George", "Orwell")
	book, err := repo.Create(ctx, &model.Book{Title: "1984", Description: "d"})
	require.NoError(t, err)

	err = repo.LinkAuthor(ctx, book.ID, authorID+50)
	assert.ErrorIs(t, err, model.ErrLinkTargetNotFound)

	err = repo.LinkAuthor(ctx, book.ID+50, authorID)
	assert.ErrorIs(t, err, model.ErrLinkTargetNotFound)
	assert.True(t, apperror.IsPersistence(err))

	var links int
	require.NoError(t, db.GetContext(ctx, &links, `SELECT COUNT(*) FROM "AuthorBook"`))
	assert.Zero(t, links)
}

func TestRepository_UnlinkAuthor(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewRepository(db, nil, time.Minute)

	authorID := insertAuthor(t, db, "George", "Orwell")
	book, err := repo.Create(ctx, &model.Book{Title: "1984", Description: "d"})
	require.NoError(t, err)
	require.NoError(t, repo.LinkAuthor(ctx, book.ID, authorID))

	require.NoError(t, repo.UnlinkAuthor(ctx, book.ID, authorID))
	assert.ErrorIs(t, repo.UnlinkAuthor(ctx, book.ID, authorID), model.ErrLinkNotFound)

	authors, err := repo.ListAuthors(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestRepository_DeleteBookCascadesLinks(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := NewRepository(db, nil, time.Minute)

	a1 := insertAuthor(t, db, "Terry", "Pratchett")
	a2 := insertAuthor(t, db, "Neil", "Gaiman")
	book, err := repo.Create(ctx, &model.Book{Title: "Good Omens", Description: "d"})
	require.NoError(t, err)
	require.NoError(t, repo.LinkAuthor(ctx, book.ID, a1))
	require.NoError(t, repo.LinkAuthor(ctx, book.ID, a2))

	require.NoError(t, repo.Delete(ctx, book.ID))
	assert.ErrorIs(t, repo.Delete(ctx, book.ID), model.ErrBookNotFound)

	var links, authors int
	require.NoError(t, db.GetContext(ctx, &links, `SELECT COUNT(*) FROM "AuthorBook"`))
	require.NoError(t, db.GetContext(ctx, &authors, `SELECT COUNT(*) FROM "Author"`))
	assert.Zero(t, links)
	assert.Equal(t, 2, authors)
}

func TestRepository_CacheInvalidatedOnDelete(t *testing.T) {
	ctx := context.Background()
	rc, mr := testutil.NewTestCache(t)
	repo := NewRepository(testutil.NewTestDB(t), rc, time.Minute)

	created, err := repo.Create(ctx, &model.Book{Title: "1984", Description: "d"})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(bookCacheKey(created.ID)))

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.False(t, mr.Exists(bookCacheKey(created.ID)))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestRepository_UpdateRejectedBySchema(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testutil.NewTestDB(t), nil, time.Minute)

	created, err := repo.Create(ctx, &model.Book{Title: "Animal Farm", Description: "Fable"})
	require.NoError(t, err)

	created.Title = "   "
	_, err = repo.Update(ctx, created)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConstraint)
	assert.True(t, apperror.IsPersistence(err))
}
