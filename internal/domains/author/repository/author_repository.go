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

	"library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/shared/apperror"
	"library-catalog/pkg/cache"
)

const authorCacheKeyPrefix = "author:"

var (
	authorTable   = database.Quote(database.TableAuthor)
	authorColumns = database.QuoteAll("Id", "FirstName", "LastName", "DOB", "ImageUrl")
	authorIDCol   = database.Quote("Id")
)

// sqlRepository implements RepositoryInterface for every supported dialect.
type sqlRepository struct {
	db      sqlx.ExtContext
	dialect database.Dialect
	builder sq.StatementBuilderType
	cache   cache.Cache
	ttl     time.Duration
}

// NewRepository receives the shared handle and cache from the container.
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

func (r *sqlRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	columns := []string{"FirstName", "LastName", "DOB", "ImageUrl"}
	values := []interface{}{a.FirstName, a.LastName, a.DOB, a.ImageURL}
	if a.ID != 0 {
		columns = append([]string{"Id"}, columns...)
		values = append([]interface{}{a.ID}, values...)
	}

	query, args, err := r.builder.
		Insert(authorTable).
		Columns(database.QuoteAll(columns...)...).
		Values(values...).
		Suffix("RETURNING " + authorIDCol).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert author: %w", err)
	}

	created := *a
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, writeFailure("create author", err)
	}

	return &created, nil
}

func (r *sqlRepository) GetByID(ctx context.Context, id int) (*model.Author, error) {
	cacheKey := authorCacheKey(id)

	var a model.Author
	if cached, err := r.cache.Get(ctx, cacheKey, &a); err == nil && cached {
		return &a, nil
	} else if err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("author cache read failed")
	}

	query, args, err := r.builder.
		Select(authorColumns...).
		From(authorTable).
		Where(sq.Eq{authorIDCol: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get author: %w", err)
	}

	if err := sqlx.GetContext(ctx, r.db, &a, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, apperror.Persistence("get author", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, r.ttl); err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("author cache write failed")
	}

	return &a, nil
}

func (r *sqlRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	var where sq.Sqlizer = sq.And{}
	if filter.Search != "" {
		where = sq.Or{
			r.dialect.ContainsFold(database.Quote("FirstName"), filter.Search),
			r.dialect.ContainsFold(database.Quote("LastName"), filter.Search),
		}
	}

	query, args, err := r.builder.
		Select(authorColumns...).
		From(authorTable).
		Where(where).
		OrderBy(authorIDCol + " ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list authors: %w", err)
	}

	authors := []model.Author{}
	if err := sqlx.SelectContext(ctx, r.db, &authors, query, args...); err != nil {
		return nil, 0, apperror.Persistence("list authors", err)
	}

	countQuery, countArgs, err := r.builder.
		Select("COUNT(*)").
		From(authorTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count authors: %w", err)
	}

	var total int64
	if err := r.db.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperror.Persistence("count authors", err)
	}

	return authors, total, nil
}

func (r *sqlRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query, args, err := r.builder.
		Update(authorTable).
		Set(database.Quote("FirstName"), a.FirstName).
		Set(database.Quote("LastName"), a.LastName).
		Set(database.Quote("DOB"), a.DOB).
		Set(database.Quote("ImageUrl"), a.ImageURL).
		Where(sq.Eq{authorIDCol: a.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update author: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, writeFailure("update author", err)
	}
	if err := requireAffected(result, model.ErrAuthorNotFound); err != nil {
		return nil, err
	}

	r.invalidate(ctx, a.ID)

	updated := *a
	return &updated, nil
}

func (r *sqlRepository) Delete(ctx context.Context, id int) error {
	query, args, err := r.builder.
		Delete(authorTable).
		Where(sq.Eq{authorIDCol: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete author: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.Persistence("delete author", err)
	}
	if err := requireAffected(result, model.ErrAuthorNotFound); err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *sqlRepository) Exists(ctx context.Context, id int) (bool, error) {
	query, args, err := r.builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(authorTable).
		Where(sq.Eq{authorIDCol: id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build author exists: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, apperror.Persistence("author exists", err)
	}
	return exists, nil
}

func (r *sqlRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(authorTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count authors: %w", err)
	}

	var total int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperror.Persistence("count authors", err)
	}
	return total, nil
}

func (r *sqlRepository) ListBooks(ctx context.Context, authorID int) ([]bookmodel.Book, error) {
	query, args, err := r.builder.
		Select(
			database.Qualify("b", "Id"),
			database.Qualify("b", "Title"),
			database.Qualify("b", "Description"),
			database.Qualify("b", "Published"),
			database.Qualify("b", "ImageURL"),
		).
		From(database.Quote(database.TableBook) + " b").
		Join(fmt.Sprintf("%s ab ON %s = %s",
			database.Quote(database.TableAuthorBook),
			database.Qualify("ab", "BookId"),
			database.Qualify("b", "Id"),
		)).
		Where(sq.Eq{database.Qualify("ab", "AuthorId"): authorID}).
		OrderBy(database.Qualify("b", "Id") + " ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list author books: %w", err)
	}

	books := []bookmodel.Book{}
	if err := sqlx.SelectContext(ctx, r.db, &books, query, args...); err != nil {
		return nil, apperror.Persistence("list author books", err)
	}
	return books, nil
}

func (r *sqlRepository) invalidate(ctx context.Context, id int) {
	if err := r.cache.Delete(ctx, authorCacheKey(id)); err != nil {
		log.Warn().Err(err).Int("author_id", id).Msg("author cache invalidation failed")
	}
}

func authorCacheKey(id int) string {
	return authorCacheKeyPrefix + strconv.Itoa(id)
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
