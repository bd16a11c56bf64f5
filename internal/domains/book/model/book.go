package model

// Field limits shared by validation and the schema.
const (
	MaxTitleLength       = 55
	MaxDescriptionLength = 55
	MaxPublishedLength   = 25
)

// Book is a catalog book.
type Book struct {
	ID          int     `json:"id" db:"Id"`
	Title       string  `json:"title" db:"Title"`
	Description string  `json:"description" db:"Description"`
	Published   *string `json:"published,omitempty" db:"Published"` // year, e.g. "1949"
	ImageURL    *string `json:"image_url,omitempty" db:"ImageURL"`
}

// AuthorBook is one row of the author/book association.
type AuthorBook struct {
	AuthorID int `json:"author_id" db:"AuthorId"`
	BookID   int `json:"book_id" db:"BookId"`
}
