package model

import "fmt"

// Field limits shared by validation and the schema.
const (
	MaxNameLength = 55
)

// Author is a catalog author. FullName is derived and never stored.
type Author struct {
	ID        int     `json:"id" db:"Id"`
	FirstName string  `json:"first_name" db:"FirstName"`
	LastName  string  `json:"last_name" db:"LastName"`
	DOB       string  `json:"dob" db:"DOB"` // free text, e.g. "06/25/1903"
	ImageURL  *string `json:"image_url,omitempty" db:"ImageUrl"`
}

// FullName renders "LastName, FirstName".
func (a Author) FullName() string {
	return fmt.Sprintf("%s, %s", a.LastName, a.FirstName)
}
