package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AuthorRequest - POST /v1/authors and PUT /v1/authors/:id
// PUT replaces the whole record, so both share one shape.
type AuthorRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	DOB       string  `json:"dob"`
	ImageURL  *string `json:"image_url,omitempty"`
}

// Normalize trims surrounding whitespace so blank names fail Required.
func (r *AuthorRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.DOB = strings.TrimSpace(r.DOB)
	if r.ImageURL != nil {
		trimmed := strings.TrimSpace(*r.ImageURL)
		if trimmed == "" {
			r.ImageURL = nil
		} else {
			r.ImageURL = &trimmed
		}
	}
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.RuneLength(1, MaxNameLength).Error("first name must be at most 55 characters"),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.RuneLength(1, MaxNameLength).Error("last name must be at most 55 characters"),
		),
		validation.Field(&r.ImageURL, is.URL.Error("image url must be a valid URL")),
	)
}

// ToEntity builds the entity; id is zero for inserts.
func (r AuthorRequest) ToEntity(id int) *Author {
	return &Author{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		DOB:       r.DOB,
		ImageURL:  r.ImageURL,
	}
}

type AuthorResponse struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	FullName  string  `json:"full_name"`
	DOB       string  `json:"dob"`
	ImageURL  *string `json:"image_url,omitempty"`
}

func (a Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
		DOB:       a.DOB,
		ImageURL:  a.ImageURL,
	}
}

// AuthorFilter - query parameters for GET /v1/authors
type AuthorFilter struct {
	Search string `form:"search"` // matches first or last name
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

// Sanitize applies pagination defaults and caps.
func (f *AuthorFilter) Sanitize() {
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
