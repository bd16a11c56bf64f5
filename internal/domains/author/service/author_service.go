package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	bookmodel "library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/apperror"
)

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req model.AuthorRequest) (*model.Author, error) {
	req.Normalize()
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity(0))
	if err != nil {
		return nil, err
	}

	log.Info().Int("author_id", created.ID).Str("full_name", created.FullName()).Msg("author created")
	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id int) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, *model.PaginationMeta, error) {
	filter.Sanitize()
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return items, &model.PaginationMeta{Limit: filter.Limit, Offset: filter.Offset, Total: total}, nil
}

func (s *authorService) Update(ctx context.Context, id int, req model.AuthorRequest) (*model.Author, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}

	req.Normalize()
	if err := apperror.FromValidation(req.Validate()); err != nil {
		return nil, err
	}

	// The id comes from the path only; it is never taken from the body.
	updated, err := s.repo.Update(ctx, req.ToEntity(id))
	if err != nil {
		return nil, err
	}

	log.Info().Int("author_id", id).Msg("author replaced")
	return updated, nil
}

func (s *authorService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return model.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int("author_id", id).Msg("author deleted")
	return nil
}

func (s *authorService) ListBooks(ctx context.Context, id int) ([]bookmodel.Book, error) {
	if id <= 0 {
		return nil, model.ErrInvalidID
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrAuthorNotFound
	}

	return s.repo.ListBooks(ctx, id)
}
