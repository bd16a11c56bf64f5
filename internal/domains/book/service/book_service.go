package service

import (
	"context"

	"github.com/rs/zerolog/log"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/internal/shared/apperror"
)

type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) Create(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	req.Normalize()
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity(0))
	if err != nil {
		return nil, err
	}

	log.Info().Int("book_id", created.ID).Str("title", created.Title).Msg("book created")
	return created, nil
}

func (s *bookService) GetByID(ctx context.Context, id int) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, *model.PaginationMeta, error) {
	filter.Sanitize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return items, &model.PaginationMeta{Limit: filter.Limit, Offset: filter.Offset, Total: total}, nil
}

func (s *bookService) Update(ctx context.Context, id int, req model.BookRequest) (*model.Book, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}

	req.Normalize()
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, req.ToEntity(id))
	if err != nil {
		return nil, err
	}

	log.Info().Int("book_id", id).Msg("book replaced")
	return updated, nil
}

func (s *bookService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return model.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int("book_id", id).Msg("book deleted")
	return nil
}

// LinkAuthor relies on the join table's foreign keys to reject unknown ids.
func (s *bookService) LinkAuthor(ctx context.Context, bookID, authorID int) error {
	if bookID <= 0 || authorID <= 0 {
		return model.ErrInvalidID
	}
	if err := s.repo.LinkAuthor(ctx, bookID, authorID); err != nil {
		return err
	}

	log.Info().Int("book_id", bookID).Int("author_id", authorID).Msg("author linked to book")
	return nil
}

func (s *bookService) UnlinkAuthor(ctx context.Context, bookID, authorID int) error {
	if bookID <= 0 || authorID <= 0 {
		return model.ErrInvalidID
	}
	return s.repo.UnlinkAuthor(ctx, bookID, authorID)
}

func (s *bookService) ListAuthors(ctx context.Context, bookID int) ([]authormodel.Author, error) {
	if bookID <= 0 {
		return nil, model.ErrInvalidID
	}

	exists, err := s.repo.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrBookNotFound
	}

	return s.repo.ListAuthors(ctx, bookID)
}
