// Package profile manages user-curated identity records attached to wallet
// addresses.
package profile

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stacklens/internal/domain"
	"stacklens/pkg/errors"
	"stacklens/pkg/logger"
	"stacklens/pkg/validator"
)

// Repository persists profiles.
type Repository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByAddress(ctx context.Context, address string) (*domain.Profile, error)
	FindByUsername(ctx context.Context, username string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// Service implements profile CRUD with address and username checks.
type Service struct {
	repo   Repository
	logger logger.Logger
}

// NewService constructs a profile Service.
func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// CreateInput carries the fields accepted when registering a profile.
type CreateInput struct {
	Address  string
	Avatar   string
	Username string
	Bio      string
}

// UpdateInput carries optional profile changes; nil fields stay unchanged.
type UpdateInput struct {
	Avatar   *string
	Username *string
	Bio      *string
}

// Create registers a profile for an address that has none yet.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Profile, error) {
	if !validator.IsStacksAddress(in.Address) {
		return nil, errors.ErrInvalidAddress
	}

	if existing, err := s.repo.FindByAddress(ctx, in.Address); err == nil && existing != nil {
		return nil, errors.ErrProfileAlreadyExists
	}

	if in.Username != "" {
		if taken, err := s.repo.FindByUsername(ctx, in.Username); err == nil && taken != nil {
			return nil, errors.ErrUsernameTaken
		}
	}

	now := time.Now()
	profile := &domain.Profile{
		ID:        uuid.New(),
		Address:   in.Address,
		Avatar:    in.Avatar,
		Username:  in.Username,
		Bio:       in.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("Profile created", map[string]interface{}{
		"address":  profile.Address,
		"username": profile.Username,
	})

	return profile, nil
}

// Get returns the profile registered for an address.
func (s *Service) Get(ctx context.Context, address string) (*domain.Profile, error) {
	if !validator.IsStacksAddress(address) {
		return nil, errors.ErrInvalidAddress
	}
	return s.repo.FindByAddress(ctx, address)
}

// Update applies partial changes to an existing profile.
func (s *Service) Update(ctx context.Context, address string, in UpdateInput) (*domain.Profile, error) {
	profile, err := s.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != profile.Username {
		if *in.Username != "" {
			if taken, err := s.repo.FindByUsername(ctx, *in.Username); err == nil && taken != nil {
				return nil, errors.ErrUsernameTaken
			}
		}
		profile.Username = *in.Username
	}
	if in.Avatar != nil {
		profile.Avatar = *in.Avatar
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
