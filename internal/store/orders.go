package store

import "context"

// Address is the shipping snapshot copied onto an order at checkout.
type Address struct {
	Street string
	City   string
	Zip    string
}

type OrderLine struct {
	OrderID int64
	ISBN    string
	Qty     int32
	Amount  Money
}

// CreateOrder inserts the order row and returns its id. Order lines
// are added separately; see cart.Service.Checkout for the sequence.
func (s *Store) CreateOrder(ctx context.Context, userID, createdUnix int64, addr Address) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO orders(userid, created_unix, ship_street, ship_city, ship_zip)
		VALUES(?,?,?,?,?)`, userID, createdUnix, addr.Street, addr.City, addr.Zip)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) AddOrderLine(ctx context.Context, l OrderLine) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO odetails(ono, isbn, qty, amount_cents)
		VALUES(?,?,?,?)`, l.OrderID, l.ISBN, l.Qty, l.Amount.Cents)
	return err
}

// OrderLines reads back the lines of an order, insertion order.
func (s *Store) OrderLines(ctx context.Context, orderID int64) ([]OrderLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ono, isbn, qty, amount_cents FROM odetails WHERE ono = ?`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []OrderLine
	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.OrderID, &l.ISBN, &l.Qty, &l.Amount.Cents); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountOrders is used by tests and the health endpoint.
func (s *Store) CountOrders(ctx context.Context, userID int64) (int64, error) {
	var c int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE userid = ?`, userID).Scan(&c)
	return c, err
}
