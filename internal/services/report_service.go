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

// WeeklyReport aggregates the last seven days of completions.
type WeeklyReport struct {
	UserID         int64               `json:"user_id"`
	DisplayName    string              `json:"display_name"`
	From           time.Time           `json:"from"`
	To             time.Time           `json:"to"`
	TasksCompleted int                 `json:"tasks_completed"`
	ExpEarned      int                 `json:"exp_earned"`
	HealthRestored int                 `json:"health_restored"`
	PerDay         map[string]int      `json:"per_day"` // "2006-01-02" -> count
	Profile        *models.UserProfile `json:"profile"`
}

type ReportService interface {
	Weekly(ctx context.Context, userID int64) (*WeeklyReport, error)
	// EmailWeekly mails the user their week in review. A nil email service
	// (SMTP not configured) turns it into a logged no-op.
	EmailWeekly(ctx context.Context, userID int64) error
}

type reportService struct {
	users     repositories.UserRepository
	profiles  repositories.ProfileRepository
	instances repositories.InstanceRepository
	email     EmailService

	now func() time.Time
}

func NewReportService(
	users repositories.UserRepository,
	profiles repositories.ProfileRepository,
	instances repositories.InstanceRepository,
	email EmailService,
) ReportService {
	return &reportService{
		users:     users,
		profiles:  profiles,
		instances: instances,
		email:     email,
		now:       time.Now,
	}
}

func (s *reportService) Weekly(ctx context.Context, userID int64) (*WeeklyReport, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, engine.ErrNotFound
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile for user %d missing", userID)
	}

	to := s.now()
	from := to.AddDate(0, 0, -7)
	completed, err := s.instances.ListCompletedSince(ctx, userID, from)
	if err != nil {
		return nil, err
	}

	report := &WeeklyReport{
		UserID:      userID,
		DisplayName: user.DisplayName,
		From:        from,
		To:          to,
		PerDay:      map[string]int{},
		Profile:     profile,
	}
	for i := range completed {
		inst := &completed[i]
		report.TasksCompleted++
		report.ExpEarned += inst.ExpEarned
		report.HealthRestored += inst.AreaHealthRestored
		if inst.CompletedAt != nil {
			day := inst.CompletedAt.Format("2006-01-02")
			report.PerDay[day]++
		}
	}
	return report, nil
}

func (s *reportService) EmailWeekly(ctx context.Context, userID int64) error {
	if s.email == nil {
		log.Printf("[report][email][skip] smtp not configured userID=%d", userID)
		return nil
	}
	report, err := s.Weekly(ctx, userID)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return engine.ErrNotFound
	}
	return s.email.SendWeeklySummary(user.Email, user.DisplayName,
		report.TasksCompleted, report.ExpEarned)
}
