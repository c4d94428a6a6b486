package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type Member struct {
	ID           int64
	FirstName    string
	LastName     string
	Street       string
	City         string
	Zip          string
	Phone        string
	Email        string
	PasswordHash string
	CreatedUnix  int64
}

// Name is the display name kept in the session.
func (m *Member) Name() string { return m.FirstName + " " + m.LastName }

// CreateMember inserts a new member. A duplicate email surfaces as
// ErrConflict.
func (s *Store) CreateMember(ctx context.Context, m *Member) (int64, error) {
	if m.CreatedUnix == 0 {
		m.CreatedUnix = time.Now().Unix()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO members(fname, lname, street, city, zip, phone, email, password_hash, created_unix)
		VALUES(?,?,?,?,?,?,?,?,?)`,
		m.FirstName, m.LastName, m.Street, m.City, m.Zip, m.Phone, m.Email, m.PasswordHash, m.CreatedUnix)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("member email %q: %w", m.Email, ErrConflict)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// MemberByEmail returns nil, nil when no member has the given email.
func (s *Store) MemberByEmail(ctx context.Context, email string) (*Member, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT userid, fname, lname, street, city, zip, phone, email, password_hash, created_unix
		FROM members WHERE email = ? LIMIT 1`, email)
	m := &Member{}
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Street, &m.City, &m.Zip,
		&m.Phone, &m.Email, &m.PasswordHash, &m.CreatedUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) MemberByID(ctx context.Context, id int64) (*Member, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT userid, fname, lname, street, city, zip, phone, email, password_hash, created_unix
		FROM members WHERE userid = ?`, id)
	m := &Member{}
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Street, &m.City, &m.Zip,
		&m.Phone, &m.Email, &m.PasswordHash, &m.CreatedUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
