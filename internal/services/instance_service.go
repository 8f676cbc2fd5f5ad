package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"chorequest/internal/engine"
	"chorequest/internal/models"
	"chorequest/internal/repositories"
)

type InstanceService interface {
	// EnsureInstance materializes at most one instance per (assignment,
	// due date). Safe to call repeatedly: the second call returns the
	// existing row with created=false.
	EnsureInstance(ctx context.Context, assignment *models.UserTaskAssignment, dueDate time.Time) (*models.TaskInstance, bool, error)

	// GenerateForUser walks the user's active assignments and ensures
	// today's (or the requested date's) instances exist. One failing
	// assignment never aborts the batch.
	GenerateForUser(ctx context.Context, userID int64, date time.Time) (*models.GenerationResult, error)

	GetByID(ctx context.Context, id int64) (*models.TaskInstance, error)
	ListViewsForDate(ctx context.Context, userID int64, date time.Time) ([]models.TaskView, error)

	// Toggle flips the completed flag without touching rewards. It sits
	// outside the reward engine's atomicity guarantee on purpose.
	Toggle(ctx context.Context, id int64, userID int64) (*models.TaskInstance, error)
}

type instanceService struct {
	instances   repositories.InstanceRepository
	assignments repositories.AssignmentRepository
	templates   repositories.TemplateRepository
	legacy      repositories.LegacyTaskRepository

	now func() time.Time
}

func NewInstanceService(
	instances repositories.InstanceRepository,
	assignments repositories.AssignmentRepository,
	templates repositories.TemplateRepository,
	legacy repositories.LegacyTaskRepository,
) InstanceService {
	return &instanceService{
		instances:   instances,
		assignments: assignments,
		templates:   templates,
		legacy:      legacy,
		now:         time.Now,
	}
}

func (s *instanceService) EnsureInstance(ctx context.Context, assignment *models.UserTaskAssignment, dueDate time.Time) (*models.TaskInstance, bool, error) {
	due := engine.DateOnly(dueDate)

	existing, err := s.instances.FindByAssignmentAndDate(ctx, assignment.ID, due)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	// The unique index backs this up if two callers race past the lookup.
	inst, created, err := s.instances.StoreIfAbsent(ctx, assignment.ID, due)
	if err != nil {
		return nil, false, err
	}
	return inst, created, nil
}

// dueOn decides whether an assignment owes an instance on the given date.
// The first generation is always due; afterwards the recurrence calculator
// projects forward from the latest materialized occurrence.
func (s *instanceService) dueOn(ctx context.Context, a *models.UserTaskAssignment, tpl *models.TaskTemplate, date time.Time) (bool, error) {
	last, err := s.instances.LatestDueDate(ctx, a.ID)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}

	var next time.Time
	if a.IntervalOverride != nil {
		next = engine.NextAfterInterval(*last, *a.IntervalOverride)
	} else {
		next = engine.NextOccurrence(*last, tpl.Frequency, a.PreferredWeekday)
	}
	return !engine.DateOnly(next).After(date), nil
}

func (s *instanceService) GenerateForUser(ctx context.Context, userID int64, date time.Time) (*models.GenerationResult, error) {
	if date.IsZero() {
		date = s.now()
	}
	date = engine.DateOnly(date)

	assignments, err := s.assignments.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	result := &models.GenerationResult{
		Created: []models.TaskInstance{},
		Skipped: []int64{},
		Errors:  []models.GenerationError{},
	}
	for i := range assignments {
		a := &assignments[i]

		tpl, err := s.templates.FindByID(ctx, a.TemplateID)
		if err != nil || tpl == nil {
			if err == nil {
				err = fmt.Errorf("template %d not found", a.TemplateID)
			}
			log.Printf("[instance][generate][warn] assignment=%d: %v", a.ID, err)
			result.Errors = append(result.Errors, models.GenerationError{
				AssignmentID: a.ID, Message: err.Error(),
			})
			continue
		}

		due, err := s.dueOn(ctx, a, tpl, date)
		if err != nil {
			log.Printf("[instance][generate][warn] assignment=%d: %v", a.ID, err)
			result.Errors = append(result.Errors, models.GenerationError{
				AssignmentID: a.ID, Message: err.Error(),
			})
			continue
		}
		if !due {
			result.Skipped = append(result.Skipped, a.ID)
			continue
		}

		inst, created, err := s.EnsureInstance(ctx, a, date)
		if err != nil {
			log.Printf("[instance][generate][warn] assignment=%d: %v", a.ID, err)
			result.Errors = append(result.Errors, models.GenerationError{
				AssignmentID: a.ID, Message: err.Error(),
			})
			continue
		}
		if created {
			result.Created = append(result.Created, *inst)
		} else {
			result.Skipped = append(result.Skipped, a.ID)
		}
	}
	return result, nil
}

func (s *instanceService) GetByID(ctx context.Context, id int64) (*models.TaskInstance, error) {
	return s.instances.FindByID(ctx, id)
}

// ListViewsForDate merges templated instances with legacy flat tasks into
// the uniform TaskView projection.
func (s *instanceService) ListViewsForDate(ctx context.Context, userID int64, date time.Time) ([]models.TaskView, error) {
	date = engine.DateOnly(date)

	instances, err := s.instances.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	views := []models.TaskView{}
	for i := range instances {
		inst := &instances[i]
		a, err := s.assignments.FindByID(ctx, inst.AssignmentID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			continue
		}
		tpl, err := s.templates.FindByID(ctx, a.TemplateID)
		if err != nil {
			return nil, err
		}
		if tpl == nil {
			continue
		}
		views = append(views, models.ViewFromInstance(inst, a, tpl))
	}

	legacyTasks, err := s.legacy.ListByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	for i := range legacyTasks {
		views = append(views, models.ViewFromLegacy(&legacyTasks[i]))
	}
	return views, nil
}

func (s *instanceService) Toggle(ctx context.Context, id int64, userID int64) (*models.TaskInstance, error) {
	inst, err := s.instances.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, engine.ErrNotFound
	}
	a, err := s.assignments.FindByID(ctx, inst.AssignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.UserID != userID {
		return nil, engine.ErrNotOwner
	}

	if inst.Completed {
		inst.Completed = false
		inst.CompletedAt = nil
	} else {
		now := s.now()
		inst.Completed = true
		inst.CompletedAt = &now
	}
	if err := s.instances.SetCompleted(ctx, inst.ID, inst.Completed, inst.CompletedAt); err != nil {
		return nil, err
	}
	return inst, nil
}
