// Package auth verifies credentials and registers members.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkarlsson/bookshop/internal/store"
)

// ErrInvalidCredentials covers both an unknown email and a wrong
// password, so a login attempt cannot probe which emails exist.
var ErrInvalidCredentials = errors.New("Invalid email or password.")

type Service struct {
	store *store.Store
}

func New(s *store.Store) *Service { return &Service{store: s} }

// Login looks the member up by email and verifies the password hash.
func (s *Service) Login(ctx context.Context, email, password string) (*store.Member, error) {
	m, err := s.store.MemberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return m, nil
}

// Register hashes the password and inserts the member. The zip is
// stored space-stripped. A duplicate email surfaces as
// store.ErrConflict; callers validate the form first.
func (s *Service) Register(ctx context.Context, r Registration) (*store.Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	m := &store.Member{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Street:       r.Street,
		City:         r.City,
		Zip:          r.NormalizedZip(),
		Phone:        r.Phone,
		Email:        r.Email,
		PasswordHash: string(hash),
	}
	id, err := s.store.CreateMember(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}
