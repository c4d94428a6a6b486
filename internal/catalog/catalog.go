// Package catalog builds the filtered, paginated book listing.
package catalog

import (
	"context"
	"strconv"

	"github.com/mkarlsson/bookshop/internal/store"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 5
)

type Service struct {
	store *store.Store
}

func New(s *store.Store) *Service { return &Service{store: s} }

type Query struct {
	Filter   store.BookFilter
	Page     int
	PageSize int
}

// Listing is the view model for books/index.
type Listing struct {
	Subjects   []string
	Books      []store.Book
	Filter     store.BookFilter
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}

// ParsePage falls back to the default page for non-numeric or < 1
// input.
func ParsePage(raw string) int {
	return parsePositive(raw, DefaultPage)
}

// ParsePageSize falls back to the default page size for non-numeric or
// < 1 input.
func ParsePageSize(raw string) int {
	return parsePositive(raw, DefaultPageSize)
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// TotalPages is 1 for an empty result, otherwise ceil(total/pageSize).
func TotalPages(total int64, pageSize int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// List runs the filter over the catalog: one page of rows ordered by
// title, plus the total count over the same predicate and the subject
// list for the filter selector.
func (s *Service) List(ctx context.Context, q Query) (*Listing, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	subjects, err := s.store.Subjects(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountBooks(ctx, q.Filter)
	if err != nil {
		return nil, err
	}
	offset := (q.Page - 1) * q.PageSize
	books, err := s.store.BookPage(ctx, q.Filter, q.PageSize, offset)
	if err != nil {
		return nil, err
	}

	return &Listing{
		Subjects:   subjects,
		Books:      books,
		Filter:     q.Filter,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, q.PageSize),
	}, nil
}
