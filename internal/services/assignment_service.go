package services

import (
	"context"
	"fmt"

	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

type AssignmentService interface {
	Adopt(ctx context.Context, a *models.UserTaskAssignment) (*models.UserTaskAssignment, error)
	GetByID(ctx context.Context, id int64) (*models.UserTaskAssignment, error)
	ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]models.UserTaskAssignment, error)
	Update(ctx context.Context, id int64, userID int64, updateData *models.UserTaskAssignment) (*models.UserTaskAssignment, error)
	Deactivate(ctx context.Context, id int64, userID int64) error
}

type assignmentService struct {
	repo      repositories.AssignmentRepository
	templates repositories.TemplateRepository
}

func NewAssignmentService(repo repositories.AssignmentRepository, templates repositories.TemplateRepository) AssignmentService {
	return &assignmentService{repo: repo, templates: templates}
}

func (s *assignmentService) Adopt(ctx context.Context, a *models.UserTaskAssignment) (*models.UserTaskAssignment, error) {
	tpl, err := s.templates.FindByID(ctx, a.TemplateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template %d not found", a.TemplateID)
	}
	if a.IntervalOverride != nil && *a.IntervalOverride < 1 {
		return nil, fmt.Errorf("interval_override must be at least 1 day")
	}
	if a.PreferredWeekday != nil && (*a.PreferredWeekday < 0 || *a.PreferredWeekday > 6) {
		return nil, fmt.Errorf("preferred_weekday must be 0..6 (Sunday..Saturday)")
	}

	if err := s.repo.Store(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id int64) (*models.UserTaskAssignment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *assignmentService) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]models.UserTaskAssignment, error) {
	return s.repo.ListByUser(ctx, userID, activeOnly)
}

func (s *assignmentService) Update(ctx context.Context, id int64, userID int64, updateData *models.UserTaskAssignment) (*models.UserTaskAssignment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("assignment %d not owned by user %d", id, userID)
	}

	existing.NameOverride = updateData.NameOverride
	existing.DescriptionOverride = updateData.DescriptionOverride
	existing.IntervalOverride = updateData.IntervalOverride
	existing.PreferredWeekday = updateData.PreferredWeekday

	if existing.IntervalOverride != nil && *existing.IntervalOverride < 1 {
		return nil, fmt.Errorf("interval_override must be at least 1 day")
	}
	if existing.PreferredWeekday != nil && (*existing.PreferredWeekday < 0 || *existing.PreferredWeekday > 6) {
		return nil, fmt.Errorf("preferred_weekday must be 0..6 (Sunday..Saturday)")
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate flips the active flag; history stays intact.
func (s *assignmentService) Deactivate(ctx context.Context, id int64, userID int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("assignment %d not found", id)
	}
	if existing.UserID != userID {
		return fmt.Errorf("assignment %d not owned by user %d", id, userID)
	}
	return s.repo.SetActive(ctx, id, false)
}
