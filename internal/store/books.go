package store

import (
	"context"
	"strings"
)

type Book struct {
	ISBN    string
	Title   string
	Author  string
	Price   Money
	Subject string
}

// BookFilter narrows the catalog. Zero-value fields are ignored.
// Subject matches exactly, Author is a case-insensitive prefix and
// Title a case-insensitive substring.
type BookFilter struct {
	Subject string
	Author  string
	Title   string
}

func (f BookFilter) where() (string, []any) {
	var conds []string
	var params []any
	if f.Subject != "" {
		conds = append(conds, "subject = ?")
		params = append(params, f.Subject)
	}
	if f.Author != "" {
		conds = append(conds, "LOWER(author) LIKE ?")
		params = append(params, strings.ToLower(f.Author)+"%")
	}
	if f.Title != "" {
		conds = append(conds, "LOWER(title) LIKE ?")
		params = append(params, "%"+strings.ToLower(f.Title)+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), params
}

// Subjects lists the distinct subjects, ascending.
func (s *Store) Subjects(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT subject FROM books ORDER BY subject`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var subj string
		if err := rows.Scan(&subj); err != nil {
			return nil, err
		}
		out = append(out, subj)
	}
	return out, rows.Err()
}

// CountBooks counts the rows matching the filter, ignoring pagination.
func (s *Store) CountBooks(ctx context.Context, f BookFilter) (int64, error) {
	where, params := f.where()
	var c int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`+where, params...).Scan(&c)
	return c, err
}

// BookPage returns one page of the filtered catalog, ordered by title.
func (s *Store) BookPage(ctx context.Context, f BookFilter, limit, offset int) ([]Book, error) {
	where, params := f.where()
	params = append(params, limit, offset)
	rows, err := s.db.QueryContext(ctx, `
		SELECT isbn, title, author, price_cents, subject
		FROM books`+where+`
		ORDER BY title LIMIT ? OFFSET ?`, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.Price.Cents, &b.Subject); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SeedBooks loads a small starter catalog. Safe to call repeatedly.
func (s *Store) SeedBooks(ctx context.Context) error {
	books := []Book{
		{ISBN: "9780134190440", Title: "The Go Programming Language", Author: "Alan Donovan", Price: Money{Cents: 3995}, Subject: "Programming"},
		{ISBN: "9780262033848", Title: "Introduction to Algorithms", Author: "Thomas Cormen", Price: Money{Cents: 8999}, Subject: "Computer Science"},
		{ISBN: "9780141439518", Title: "Pride and Prejudice", Author: "Jane Austen", Price: Money{Cents: 799}, Subject: "Fiction"},
		{ISBN: "9780679783268", Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Price: Money{Cents: 1050}, Subject: "Fiction"},
		{ISBN: "9780596517748", Title: "JavaScript: The Good Parts", Author: "Douglas Crockford", Price: Money{Cents: 2399}, Subject: "Programming"},
		{ISBN: "9780132350884", Title: "Clean Code", Author: "Robert Martin", Price: Money{Cents: 4250}, Subject: "Programming"},
		{ISBN: "9780553386790", Title: "A Game of Thrones", Author: "George Martin", Price: Money{Cents: 999}, Subject: "Fantasy"},
		{ISBN: "9780547928227", Title: "The Hobbit", Author: "J.R.R. Tolkien", Price: Money{Cents: 1499}, Subject: "Fantasy"},
	}
	for _, b := range books {
		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO books(isbn, title, author, price_cents, subject)
			VALUES(?,?,?,?,?)`, b.ISBN, b.Title, b.Author, b.Price.Cents, b.Subject)
		if err != nil {
			return err
		}
	}
	return nil
}

// AddBook exists for tests and admin seeding.
func (s *Store) AddBook(ctx context.Context, b Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books(isbn, title, author, price_cents, subject)
		VALUES(?,?,?,?,?)`, b.ISBN, b.Title, b.Author, b.Price.Cents, b.Subject)
	if err != nil && isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}
