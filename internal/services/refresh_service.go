package services

import (
	"context"
	"time"

	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

// RefreshService owns the server-side half of the refresh-token lifecycle.
// Tokens are opaque, stored hashed-equivalent (random hex) and rotated on
// every use.
type RefreshService interface {
	Store(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	// Rotate swaps old for new and returns the owning user, or nil when the
	// old token is unknown, revoked or expired.
	Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.User, error)
}

type refreshService struct {
	users repositories.UserRepository
}

func NewRefreshService(users repositories.UserRepository) RefreshService {
	return &refreshService{users: users}
}

func (s *refreshService) Store(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return s.users.UpdateRefresh(ctx, userID, token, expiresAt)
}

func (s *refreshService) Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.User, error) {
	current, err := s.users.GetByRefreshToken(ctx, oldToken)
	if err != nil {
		return nil, err
	}
	if current == nil || current.RefreshRevoked ||
		current.RefreshExpiresAt == nil || time.Now().After(*current.RefreshExpiresAt) {
		return nil, nil
	}
	return s.users.RotateRefresh(ctx, oldToken, newToken, expiresAt)
}
