package model

import (
	"errors"
	"fmt"

	"library-catalog/internal/shared/apperror"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidID    = errors.New("book id must be a positive integer")
	ErrLinkNotFound = errors.New("author is not linked to this book")

	// Raised by the join table's constraints.
	ErrLinkTargetNotFound = fmt.Errorf("author or book does not exist: %w", apperror.ErrPersistence)
	ErrAlreadyLinked      = fmt.Errorf("author is already linked to this book: %w", apperror.ErrPersistence)
)
