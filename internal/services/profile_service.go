package services

import (
	"context"

	"chorequest/internal/engine"
	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

// ProfileView decorates the raw profile with the experience still needed for
// the next level.
type ProfileView struct {
	models.UserProfile
	ExpToNextLevel int `json:"exp_to_next_level"`
}

type ProfileService interface {
	Get(ctx context.Context, userID int64) (*ProfileView, error)
}

type profileService struct {
	repo repositories.ProfileRepository
}

func NewProfileService(repo repositories.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, userID int64) (*ProfileView, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, engine.ErrNotFound
	}
	return &ProfileView{
		UserProfile:    *p,
		ExpToNextLevel: p.Level*engine.ExpPerLevel - p.Experience,
	}, nil
}
