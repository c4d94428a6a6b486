package store

import (
	"context"
	"database/sql"
	"errors"
)

// CartDetail is a cart line joined with its book.
type CartDetail struct {
	ISBN  string
	Title string
	Price Money
	Qty   int32
}

// CheckoutLine is a cart line joined with the book and the member's
// current address. The address repeats on every row; checkout takes
// the snapshot from the first one.
type CheckoutLine struct {
	CartDetail
	Street string
	City   string
	Zip    string
}

// CartQty returns the quantity of an existing line, or ok=false when
// the member has no line for the isbn.
func (s *Store) CartQty(ctx context.Context, userID int64, isbn string) (int32, bool, error) {
	var qty int32
	err := s.db.QueryRowContext(ctx,
		`SELECT qty FROM cart WHERE userid = ? AND isbn = ?`, userID, isbn).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return qty, true, nil
}

func (s *Store) InsertCartLine(ctx context.Context, userID int64, isbn string, qty int32) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart(userid, isbn, qty) VALUES(?,?,?)`, userID, isbn, qty)
	return err
}

func (s *Store) UpdateCartQty(ctx context.Context, userID int64, isbn string, qty int32) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE cart SET qty = ? WHERE userid = ? AND isbn = ?`, qty, userID, isbn)
	return err
}

// CartDetails joins the member's cart with book title and price.
func (s *Store) CartDetails(ctx context.Context, userID int64) ([]CartDetail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.isbn, b.title, b.price_cents, c.qty
		FROM cart c
		JOIN books b ON b.isbn = c.isbn
		WHERE c.userid = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CartDetail
	for rows.Next() {
		var d CartDetail
		if err := rows.Scan(&d.ISBN, &d.Title, &d.Price.Cents, &d.Qty); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CartForCheckout additionally joins the member row for the shipping
// address snapshot.
func (s *Store) CartForCheckout(ctx context.Context, userID int64) ([]CheckoutLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.isbn, b.title, b.price_cents, c.qty, m.street, m.city, m.zip
		FROM cart c
		JOIN books b ON b.isbn = c.isbn
		JOIN members m ON m.userid = c.userid
		WHERE c.userid = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CheckoutLine
	for rows.Next() {
		var l CheckoutLine
		if err := rows.Scan(&l.ISBN, &l.Title, &l.Price.Cents, &l.Qty, &l.Street, &l.City, &l.Zip); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cart WHERE userid = ?`, userID)
	return err
}
