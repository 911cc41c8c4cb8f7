package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/surgik-gh/AILesson-sub000/internal/config"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// InitialGranter seeds a freshly registered user's coin balance through the
// ledger so the balance change and its audit row stay paired.
type InitialGranter interface {
	GrantInitialCoins(ctx context.Context, userID uuid.UUID) error
}

type Service interface {
	Register(ctx context.Context, name, email string, role Role) (*User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo    UserRepository
	granter InitialGranter
}

func NewService(repo UserRepository, granter InitialGranter) Service {
	return &service{repo: repo, granter: granter}
}

func (s *service) Register(ctx context.Context, name, email string, role Role) (*User, error) {
	log := config.WithContext(ctx)

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if role == "" {
		role = RoleStudent
	}

	u := &User{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	if err := s.granter.GrantInitialCoins(ctx, u.ID); err != nil {
		log.WithError(err).Error("Failed to grant initial coins")
		return nil, err
	}

	created, err := s.repo.FindByID(u.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
