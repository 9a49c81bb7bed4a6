package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

const minPasswordLength = 8

// AccountService provisions the accounts that own projects. Sign-in itself
// belongs to the auth provider; this only prepares the row it reads.
type AccountService struct {
	repo ports.UserRepository
	now  func() time.Time
}

func NewAccountService(repo ports.UserRepository) *AccountService {
	return &AccountService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureAdmin creates the admin account, or refreshes its name and password
// when the email is already registered.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ValidationError("email must be a valid address")
	}
	if len(password) < minPasswordLength {
		return nil, domain.ValidationError("password must be at least %d characters", minPasswordLength)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stored, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("upsert admin: %w", err)
	}
	return stored, nil
}
