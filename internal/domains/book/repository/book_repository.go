package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/apperror"
	"library-catalog/pkg/cache"
)

const bookCacheKeyPrefix = "book:"

var (
	bookTable       = database.Quote(database.TableBook)
	authorBookTable = database.Quote(database.TableAuthorBook)
	bookColumns     = database.QuoteAll("Id", "Title", "Description", "Published", "ImageURL")
	bookIDCol       = database.Quote("Id")
	joinAuthorIDCol = database.Quote("AuthorId")
	joinBookIDCol   = database.Quote("BookId")
)

type sqlRepository struct {
	db      sqlx.ExtContext
	dialect database.Dialect
	builder sq.StatementBuilderType
	cache   cache.Cache
	ttl     time.Duration
}

func NewRepository(db *database.DB, c cache.Cache, ttl time.Duration) RepositoryInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &sqlRepository{
		db:      db.DB,
		dialect: db.Dialect,
		builder: db.Builder(),
		cache:   c,
		ttl:     ttl,
	}
}

func (r *sqlRepository) WithTx(tx *sqlx.Tx) RepositoryInterface {
	return &sqlRepository{
		db:      tx,
		dialect: r.dialect,
		builder: r.builder,
		cache:   cache.Noop{},
		ttl:     r.ttl,
	}
}

func (r *sqlRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	columns := []string{"Title", "Description", "Published", "ImageURL"}
	values := []interface{}{b.Title, b.Description, b.Published, b.ImageURL}
	if b.ID != 0 {
		columns = append([]string{"Id"}, columns...)
		values = append([]interface{}{b.ID}, values...)
	}

	query, args, err := r.builder.
		Insert(bookTable).
		Columns(database.QuoteAll(columns...)...).
		Values(values...).
		Suffix("RETURNING " + bookIDCol).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert book: %w", err)
	}

	created := *b
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, writeFailure("create book", err)
	}

	return &created, nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id int) (*model.Book, error) {
	cacheKey := bookCacheKey(id)

	var b model.Book
	if cached, err := r.cache.Get(ctx, cacheKey, &b); err == nil && cached {
		return &b, nil
	} else if err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("book cache read failed")
	}

	query, args, err := r.builder.
		Select(bookColumns...).
		From(bookTable).
		Where(sq.Eq{bookIDCol: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get book: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, apperror.Persistence("get book", err)
	}

	if err := r.cache.Set(ctx, cacheKey, b, r.ttl); err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("book cache write failed")
	}

	return &b, nil
}

func (r *sqlRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	var where sq.Sqlizer = sq.And{}
	if filter.Search != "" {
		where = r.dialect.ContainsFold(database.Quote("Title"), filter.Search)
	}

	query, args, err := r.builder.
		Select(bookColumns...).
		From(bookTable).
		Where(where).
		OrderBy(bookIDCol + " ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list books: %w", err)
	}

	books := []model.Book{}
	if err := sqlx.SelectContext(ctx, r.db, &books, query, args...); err != nil {
		return nil, 0, apperror.Persistence("list books", err)
	}

	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		From(bookTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count books: %w", err)
	}

	var total int64
	if err := r.db.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.Persistence("count books", err)
	}

	return books, total, nil
}

func (r *sqlRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query, args, err := r.builder.
		Update(bookTable).
		Set(database.Quote("Title"), b.Title).
		Set(database.Quote("Description"), b.Description).
		Set(database.Quote("Published"), b.Published).
		Set(database.Quote("ImageURL"), b.ImageURL).
		Where(sq.Eq{bookIDCol: b.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update book: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, writeFailure("update book", err)
	}
	if err := requireAffected(result, model.ErrBookNotFound); err != nil {
		return nil, err
	}

	r.invalidate(ctx, b.ID)

	updated := *b
	return &updated, nil
}

func (r *sqlRepository) Delete(ctx context.Context, id int) error {
	query, args, err := r.builder.
		Delete(bookTable).
		Where(sq.Eq{bookIDCol: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete book: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.Persistence("delete book", err)
	}
	if err := requireAffected(result, model.ErrBookNotFound); err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *sqlRepository) Exists(ctx context.Context, id int) (bool, error) {
	query, args, err := r.builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(bookTable).
		Where(sq.Eq{bookIDCol: id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build book exists: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, apperror.Persistence("book exists", err)
	}
	return exists, nil
}

func (r *sqlRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(bookTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count books: %w", err)
	}

	var total int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperror.Persistence("count books", err)
	}
	return total, nil
}

func (r *sqlRepository) LinkAuthor(ctx context.Context, bookID, authorID int) error {
	query, args, err := r.builder.
		Insert(authorBookTable).
		Columns(joinAuthorIDCol, joinBookIDCol).
		Values(authorID, bookID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build link author: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		switch {
		case database.IsForeignKeyViolation(err):
			return model.ErrLinkTargetNotFound
		case database.IsUniqueViolation(err):
			return model.ErrAlreadyLinked
		default:
			return apperror.Persistence("link author", err)
		}
	}
	return nil
}

func (r *sqlRepository) UnlinkAuthor(ctx context.Context, bookID, authorID int) error {
	query, args, err := r.builder.
		Delete(authorBookTable).
		Where(sq.Eq{joinAuthorIDCol: authorID, joinBookIDCol: bookID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build unlink author: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.Persistence("unlink author", err)
	}
	return requireAffected(result, model.ErrLinkNotFound)
}

func (r *sqlRepository) ListAuthors(ctx context.Context, bookID int) ([]authormodel.Author, error) {
	query, args, err := r.builder.
		Select(
			database.Qualify("a", "Id"),
			database.Qualify("a", "FirstName"),
			database.Qualify("a", "LastName"),
			database.Qualify("a", "DOB"),
			database.Qualify("a", "ImageUrl"),
		).
		From(database.Quote(database.TableAuthor) + " a").
		Join(fmt.Sprintf("%s ab ON %s = %s",
			authorBookTable,
			database.Qualify("ab", "AuthorId"),
			database.Qualify("a", "Id"),
		)).
		Where(sq.Eq{database.Qualify("ab", "BookId"): bookID}).
		OrderBy(database.Qualify("a", "Id") + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list book authors: %w", err)
	}

	authors := []authormodel.Author{}
	if err := sqlx.SelectContext(ctx, r.db, &authors, query, args...); err != nil {
		return nil, apperror.Persistence("list book authors", err)
	}
	return authors, nil
}

func (r *sqlRepository) invalidate(ctx context.Context, id int) {
	if err := r.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		log.Warn().Err(err).Int("book_id", id).Msg("book cache invalidation failed")
	}
}

func bookCacheKey(id int) string {
	return bookCacheKeyPrefix + strconv.Itoa(id)
}

func requireAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperror.Persistence("rows affected", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// writeFailure separates rows the schema rejected from other storage errors.
func writeFailure(op string, err error) error {
	if database.IsConstraintViolation(err) {
		return apperror.Constraint(op, err)
	}
	return apperror.Persistence(op, err)
}
