package services

import (
	"context"
	"fmt"

	"chorequest/internal/engine"
	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

// AreaView decorates a HomeArea with its derived percent and status tier.
type AreaView struct {
	models.HomeArea
	HealthPercent int               `json:"health_percent"`
	Status        engine.AreaStatus `json:"status"`
}

type AreaService interface {
	Create(ctx context.Context, area *models.HomeArea) (*models.HomeArea, error)
	ListByUser(ctx context.Context, userID int64) ([]AreaView, error)
	// Decay lowers an area's health, floored at zero. Intended for an
	// external scheduler; only the bounded arithmetic lives in the engine.
	Decay(ctx context.Context, id int64, userID int64, amount int) (*AreaView, error)
}

type areaService struct {
	repo repositories.AreaRepository
}

func NewAreaService(repo repositories.AreaRepository) AreaService {
	return &areaService{repo: repo}
}

func viewOf(area *models.HomeArea) AreaView {
	percent := engine.HealthPercent(area.CurrentHealth, area.MaxHealth)
	return AreaView{
		HomeArea:      *area,
		HealthPercent: percent,
		Status:        engine.StatusForPercent(percent),
	}
}

func (s *areaService) Create(ctx context.Context, area *models.HomeArea) (*models.HomeArea, error) {
	if !area.AreaType.IsValid() {
		return nil, fmt.Errorf("invalid area_type: %q", area.AreaType)
	}
	if area.MaxHealth <= 0 {
		area.MaxHealth = 100
	}
	if area.CurrentHealth < 0 || area.CurrentHealth > area.MaxHealth {
		area.CurrentHealth = area.MaxHealth
	}
	existing, err := s.repo.FindByUserAndType(ctx, area.UserID, area.AreaType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("area %q already exists", area.AreaType)
	}
	if err := s.repo.Store(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *areaService) ListByUser(ctx context.Context, userID int64) ([]AreaView, error) {
	areas, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]AreaView, 0, len(areas))
	for i := range areas {
		views = append(views, viewOf(&areas[i]))
	}
	return views, nil
}

func (s *areaService) Decay(ctx context.Context, id int64, userID int64, amount int) (*AreaView, error) {
	if amount < 0 {
		return nil, fmt.Errorf("decay amount must not be negative")
	}
	area, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, engine.ErrNotFound
	}
	if area.UserID != userID {
		return nil, engine.ErrNotOwner
	}

	area.CurrentHealth = engine.Decay(area.CurrentHealth, amount)
	if err := s.repo.Update(ctx, area); err != nil {
		return nil, err
	}
	v := viewOf(area)
	return &v, nil
}
