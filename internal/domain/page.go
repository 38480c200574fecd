package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SortField string

const (
	SortByID              SortField = "id"
	SortByISBN            SortField = "isbn"
	SortByTitle           SortField = "title"
	SortByAuthor          SortField = "author"
	SortByPublicationYear SortField = "publication_year"
	SortByPrice           SortField = "price"
)

var sortFields = map[SortField]struct{}{
	SortByID:              {},
	SortByISBN:            {},
	SortByTitle:           {},
	SortByAuthor:          {},
	SortByPublicationYear: {},
	SortByPrice:           {},
}

type Sort struct {
	Field SortField
	Desc  bool
}

type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset is the number of books skipped before the requested page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

type Page struct {
	Books []Book
	Total int64
}

// DefaultPageRequest is the first page sorted by id ascending.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 0, Size: DefaultPageSize, Sort: Sort{Field: SortByID}}
}

// ParseSort reads "field" or "field,direction". An empty value sorts by id ascending.
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sort{Field: SortByID}, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return Sort{}, fmt.Errorf("%w: sort must look like field,direction", ErrInvalidPage)
	}

	field := SortField(strings.TrimSpace(parts[0]))
	if _, ok := sortFields[field]; !ok {
		return Sort{}, fmt.Errorf("%w: unsupported sort field %q", ErrInvalidPage, field)
	}

	s := Sort{Field: field}
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc", "":
		case "desc":
			s.Desc = true
		default:
			return Sort{}, fmt.Errorf("%w: sort direction must be asc or desc", ErrInvalidPage)
		}
	}
	return s, nil
}

// Validate checks page bounds.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", ErrInvalidPage)
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidPage, MaxPageSize)
	}
	return nil
}
