package services

import (
	"context"
	"testing"
	"time"

	"chorequest/internal/models"
)

type reportFixture struct {
	svc       *reportService
	users     *fakeUserRepo
	profiles  *fakeProfileRepo
	instances *fakeInstanceRepo
	email     *fakeEmailService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	assignments := newFakeAssignmentRepo()
	instances := newFakeInstanceRepo(assignments)
	email := &fakeEmailService{}
	svc := NewReportService(users, profiles, instances, email).(*reportService)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	}

	user := &models.User{DisplayName: "Dana", Email: "dana@example.com"}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := profiles.Create(context.Background(), &models.UserProfile{UserID: user.ID, Level: 3, Experience: 240}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	f := &reportFixture{svc: svc, users: users, profiles: profiles, instances: instances, email: email}
	f.seedCompleted(t, assignments, user.ID, time.Date(2025, time.March, 8, 9, 0, 0, 0, time.UTC), 20, 15)
	f.seedCompleted(t, assignments, user.ID, time.Date(2025, time.March, 9, 9, 0, 0, 0, time.UTC), 30, 0)
	// another user's completion in the same window must not leak in
	f.seedCompleted(t, assignments, user.ID+1, time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC), 50, 0)
	// too old for the seven-day window
	f.seedCompleted(t, assignments, user.ID, time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC), 40, 0)
	return f
}

func (f *reportFixture) seedCompleted(t *testing.T, assignments *fakeAssignmentRepo, userID int64, completedAt time.Time, exp, restored int) {
	t.Helper()
	a := &models.UserTaskAssignment{UserID: userID, TemplateID: 1}
	if err := assignments.Store(context.Background(), a); err != nil {
		t.Fatalf("store assignment: %v", err)
	}
	done := completedAt
	f.instances.seq++
	f.instances.byID[f.instances.seq] = models.TaskInstance{
		ID:                 f.instances.seq,
		AssignmentID:       a.ID,
		DueDate:            time.Date(completedAt.Year(), completedAt.Month(), completedAt.Day(), 0, 0, 0, 0, time.UTC),
		Completed:          true,
		CompletedAt:        &done,
		ExpEarned:          exp,
		AreaHealthRestored: restored,
	}
}

func TestWeeklyAggregatesOwnCompletions(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.Weekly(context.Background(), 1)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if report.TasksCompleted != 2 {
		t.Fatalf("tasks=%d, want 2", report.TasksCompleted)
	}
	if report.ExpEarned != 50 {
		t.Fatalf("exp=%d, want 50", report.ExpEarned)
	}
	if report.HealthRestored != 15 {
		t.Fatalf("restored=%d, want 15", report.HealthRestored)
	}
	if report.PerDay["2025-03-08"] != 1 || report.PerDay["2025-03-09"] != 1 {
		t.Fatalf("per-day=%v, want one on the 8th and one on the 9th", report.PerDay)
	}
	if report.DisplayName != "Dana" {
		t.Fatalf("display name=%q", report.DisplayName)
	}
}

func TestEmailWeeklySendsAggregatedTotals(t *testing.T) {
	f := newReportFixture(t)

	if err := f.svc.EmailWeekly(context.Background(), 1); err != nil {
		t.Fatalf("email weekly: %v", err)
	}
	if len(f.email.summaries) != 1 || f.email.summaries[0] != "dana@example.com" {
		t.Fatalf("summaries=%v, want one mail to dana@example.com", f.email.summaries)
	}
	if f.email.completed != 2 || f.email.expEarned != 50 {
		t.Fatalf("mailed totals completed=%d exp=%d, want 2/50", f.email.completed, f.email.expEarned)
	}
}

func TestEmailWeeklyWithoutSMTPIsNoOp(t *testing.T) {
	f := newReportFixture(t)
	f.svc.email = nil

	if err := f.svc.EmailWeekly(context.Background(), 1); err != nil {
		t.Fatalf("email weekly without smtp: %v", err)
	}
	if len(f.email.summaries) != 0 {
		t.Fatalf("no mail should be recorded, got %v", f.email.summaries)
	}
}
