package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var yearPattern = regexp.MustCompile(`^\d{1,4}$`)

// BookRequest - POST /v1/books and PUT /v1/books/:id (whole-record replace)
type BookRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Published   *string `json:"published,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (r *BookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Published = trimOptional(r.Published)
	r.ImageURL = trimOptional(r.ImageURL)
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength).Error("title must be at most 55 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.RuneLength(1, MaxDescriptionLength).Error("description must be at most 55 characters"),
		),
		validation.Field(&r.Published,
			validation.RuneLength(0, MaxPublishedLength).Error("published must be at most 25 characters"),
			validation.Match(yearPattern).Error("published must be a year"),
		),
		validation.Field(&r.ImageURL, is.URL.Error("image url must be a valid URL")),
	)
}

func (r BookRequest) ToEntity(id int) *Book {
	return &Book{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Published:   r.Published,
		ImageURL:    r.ImageURL,
	}
}

type BookResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Published   *string `json:"published,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

func (b Book) ToResponse() BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Published:   b.Published,
		ImageURL:    b.ImageURL,
	}
}

// BookFilter - query parameters for GET /v1/books
type BookFilter struct {
	Search string `form:"search"` // title contains
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// PaginationMeta is the page a List call actually served.
type PaginationMeta struct {
	Limit  int
	Offset int
	Total  int64
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

func (f *BookFilter) Sanitize() {
	f.Search = strings.TrimSpace(f.Search)
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
