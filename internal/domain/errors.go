package domain

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")
	ErrISBNConflict = errors.New("book with this isbn already exists")
	ErrRateNotFound = errors.New("rate not found")
	ErrInvalidRate  = errors.New("rate must be a positive number")
	ErrInvalidPage  = errors.New("invalid page request")
)
