package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tripwise/internal/domain"
	"tripwise/internal/repo"
)

// minPasswordLength is the shortest password Signup accepts.
const minPasswordLength = 6

// AuthService implements signup and login. Passwords are stored only as
// bcrypt hashes; login failures are indistinguishable between unknown
// email and wrong password so the API never leaks which emails exist.
type AuthService struct {
	users repo.UserRepo
}

// NewAuthService constructs an AuthService backed by the provided UserRepo.
func NewAuthService(users repo.UserRepo) *AuthService {
	return &AuthService{users: users}
}

// Signup registers a new account and returns the persisted user.
// Returns domain.ErrValidation for invalid input and domain.ErrConflict
// when the email is already registered.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the account.
// Returns domain.ErrAuthRequired for both unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrAuthRequired)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrAuthRequired)
	}
	return user, nil
}

// normalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
