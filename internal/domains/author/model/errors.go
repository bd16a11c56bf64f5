package model

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidID      = errors.New("author id must be a positive integer")
)
