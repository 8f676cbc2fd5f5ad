package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

type TemplateService interface {
	Create(ctx context.Context, tpl *models.TaskTemplate) (*models.TaskTemplate, error)
	GetByID(ctx context.Context, id int64) (*models.TaskTemplate, error)
	GetAll(ctx context.Context, filter models.TemplateFilter) ([]models.TaskTemplate, error)
	Update(ctx context.Context, id int64, updateData *models.TaskTemplate) (*models.TaskTemplate, error)
	Delete(ctx context.Context, id int64) error
}

type templateService struct {
	repo repositories.TemplateRepository
}

func NewTemplateService(repo repositories.TemplateRepository) TemplateService {
	return &templateService{repo: repo}
}

// validateTemplate is the single gate for frequency/category values; the
// recurrence calculator trusts whatever reaches it.
func validateTemplate(tpl *models.TaskTemplate) error {
	if strings.TrimSpace(tpl.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !tpl.Frequency.IsValid() {
		return fmt.Errorf("invalid frequency: %q", tpl.Frequency)
	}
	if !tpl.Category.IsValid() {
		return fmt.Errorf("invalid category: %q", tpl.Category)
	}
	if tpl.Importance < 1 || tpl.Importance > 5 {
		return fmt.Errorf("importance must be between 1 and 5")
	}
	if tpl.ExpReward < 0 {
		return fmt.Errorf("exp_reward must not be negative")
	}
	if tpl.AreaHealthImpact < 0 {
		return fmt.Errorf("area_health_impact must not be negative")
	}
	for toolID, loss := range tpl.ToolsUsage {
		if loss < 0 {
			return fmt.Errorf("durability loss for tool %q must not be negative", toolID)
		}
	}
	return nil
}

func (s *templateService) Create(ctx context.Context, tpl *models.TaskTemplate) (*models.TaskTemplate, error) {
	if tpl.Source == "" {
		tpl.Source = models.SourceUser
	}
	if tpl.IntervalDays <= 0 {
		tpl.IntervalDays = 1
	}
	if err := validateTemplate(tpl); err != nil {
		return nil, err
	}
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	if err := s.repo.Store(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *templateService) GetByID(ctx context.Context, id int64) (*models.TaskTemplate, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *templateService) GetAll(ctx context.Context, filter models.TemplateFilter) ([]models.TaskTemplate, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *templateService) Update(ctx context.Context, id int64, updateData *models.TaskTemplate) (*models.TaskTemplate, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.Name = updateData.Name
	existing.Description = updateData.Description
	existing.Category = updateData.Category
	existing.Frequency = updateData.Frequency
	existing.IntervalDays = updateData.IntervalDays
	existing.Importance = updateData.Importance
	existing.ExpReward = updateData.ExpReward
	existing.AreaHealthImpact = updateData.AreaHealthImpact
	existing.ToolsRequired = updateData.ToolsRequired
	existing.ToolsUsage = updateData.ToolsUsage

	if err := validateTemplate(existing); err != nil {
		return nil, err
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete refuses while active assignments still reference the template.
func (s *templateService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.CountActiveAssignments(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("template %d has %d active assignments", id, n)
	}
	return s.repo.Delete(ctx, id)
}
