package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"socialblog/store"
)

// CredentialChecker decides whether a login attempt matches an account.
type CredentialChecker interface {
	Check(ctx context.Context, email, password string) (bool, error)
}

// PlaceholderCredentials accepts exactly one fixed email/password pair. It
// stands in until logins are resolved against registered users.
type PlaceholderCredentials struct {
	Email    string
	Password string
}

func NewPlaceholderCredentials() PlaceholderCredentials {
	return PlaceholderCredentials{Email: "admin@blog.com", Password: "password"}
}

func (p PlaceholderCredentials) Check(_ context.Context, email, password string) (bool, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(p.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(p.Password)) == 1
	return emailOK && passwordOK, nil
}

// StoreCredentials verifies the password against the registered user's hash.
type StoreCredentials struct {
	users store.UserStore
}

func NewStoreCredentials(users store.UserStore) *StoreCredentials {
	return &StoreCredentials{users: users}
}

func (s *StoreCredentials) Check(ctx context.Context, email, password string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return checkPasswordHash(password, user.PasswordHash), nil
}
