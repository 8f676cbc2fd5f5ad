package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"chorequest/internal/engine"
	"chorequest/internal/models"
)

type completionFixture struct {
	svc         *completionService
	instances   *fakeInstanceRepo
	assignments *fakeAssignmentRepo
	templates   *fakeTemplateRepo
	profiles    *fakeProfileRepo
	areas       *fakeAreaRepo
	tools       *fakeToolRepo
	completions *fakeCompletionRepo
}

func newCompletionFixture(t *testing.T) *completionFixture {
	t.Helper()
	assignments := newFakeAssignmentRepo()
	instances := newFakeInstanceRepo(assignments)
	templates := newFakeTemplateRepo()
	profiles := newFakeProfileRepo()
	areas := newFakeAreaRepo()
	tools := newFakeToolRepo()
	completions := &fakeCompletionRepo{instances: instances, profiles: profiles}

	svc := NewCompletionService(
		instances, assignments, templates, profiles, areas, tools, completions,
	).(*completionService)
	return &completionFixture{
		svc:         svc,
		instances:   instances,
		assignments: assignments,
		templates:   templates,
		profiles:    profiles,
		areas:       areas,
		tools:       tools,
		completions: completions,
	}
}

// seedTask wires template -> assignment -> pending instance for userID and
// returns the instance id.
func (f *completionFixture) seedTask(t *testing.T, userID int64, tpl *models.TaskTemplate) int64 {
	t.Helper()
	ctx := context.Background()
	if err := f.templates.Store(ctx, tpl); err != nil {
		t.Fatalf("store template: %v", err)
	}
	a := &models.UserTaskAssignment{UserID: userID, TemplateID: tpl.ID}
	if err := f.assignments.Store(ctx, a); err != nil {
		t.Fatalf("store assignment: %v", err)
	}
	inst, _, err := f.instances.StoreIfAbsent(ctx, a.ID, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("store instance: %v", err)
	}
	return inst.ID
}

func (f *completionFixture) seedProfile(t *testing.T, userID int64, exp int) {
	t.Helper()
	p := &models.UserProfile{
		UserID:     userID,
		Level:      engine.LevelForExperience(exp),
		Experience: exp,
	}
	if err := f.profiles.Create(context.Background(), p); err != nil {
		t.Fatalf("create profile: %v", err)
	}
}

func TestCompleteLevelUpScenario(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 390)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:      "Deep clean oven",
		Category:  models.CategoryKitchen,
		Frequency: models.FrequencyWeekly,
		ExpReward: 20,
	})

	out, err := f.svc.Complete(ctx, instID, 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	r := out.Rewards
	if r.ExpEarned != 20 || r.CoinsEarned != 2 || r.GemsEarned != 1 || !r.LevelUp {
		t.Fatalf("rewards=%+v, want exp=20 coins=2 gems=1 levelUp", r)
	}
	if out.Profile.Experience != 410 || out.Profile.Level != 5 {
		t.Fatalf("profile exp=%d level=%d, want 410/5", out.Profile.Experience, out.Profile.Level)
	}
	if out.Profile.TotalTasksCompleted != 1 {
		t.Fatalf("total completed=%d, want 1", out.Profile.TotalTasksCompleted)
	}

	stored := f.profiles.byUser[1]
	if stored.Experience != 410 || stored.Level != 5 || stored.Gems != 1 {
		t.Fatalf("persisted profile=%+v, want exp=410 level=5 gems=1", stored)
	}
	storedInst := f.instances.byID[instID]
	if !storedInst.Completed || storedInst.ExpEarned != 20 || storedInst.CompletedAt == nil {
		t.Fatalf("persisted instance=%+v, want completed snapshot", storedInst)
	}
}

func TestCompleteNoLevelUpNoGems(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 100)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:      "Water plants",
		Category:  models.CategoryLivingRoom,
		Frequency: models.FrequencyDaily,
		ExpReward: 15,
	})

	out, err := f.svc.Complete(ctx, instID, 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Rewards.GemsEarned != 0 || out.Rewards.LevelUp {
		t.Fatalf("rewards=%+v, want no level up", out.Rewards)
	}
	if out.Rewards.CoinsEarned != 1 {
		t.Fatalf("coins=%d, want 1", out.Rewards.CoinsEarned)
	}
}

func TestCompleteTwiceFailsOnce(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 50)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:      "Take out trash",
		Category:  models.CategoryKitchen,
		Frequency: models.FrequencyDaily,
		ExpReward: 10,
	})

	if _, err := f.svc.Complete(ctx, instID, 1); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := f.svc.Complete(ctx, instID, 1); !errors.Is(err, engine.ErrAlreadyCompleted) {
		t.Fatalf("second complete: err=%v, want ErrAlreadyCompleted", err)
	}

	// experience increased exactly once
	if got := f.profiles.byUser[1].Experience; got != 60 {
		t.Fatalf("experience=%d, want 60", got)
	}
}

func TestCompleteRaceLoserGetsAlreadyCompleted(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:      "Vacuum rug",
		Category:  models.CategoryLivingRoom,
		Frequency: models.FrequencyDaily,
		ExpReward: 10,
	})

	// Simulate the race: a second request passes the fast-path check while
	// the first commits. The CAS in the completion repository must reject it.
	inst, _ := f.instances.FindByID(ctx, instID)
	prof, _ := f.profiles.FindByUserID(ctx, 1)

	if _, err := f.svc.Complete(ctx, instID, 1); err != nil {
		t.Fatalf("winner: %v", err)
	}
	now := time.Now()
	inst.Completed = true
	inst.CompletedAt = &now
	if err := f.completions.Complete(ctx, inst, prof); !errors.Is(err, engine.ErrAlreadyCompleted) {
		t.Fatalf("loser: err=%v, want ErrAlreadyCompleted", err)
	}
}

func TestCompleteNotFoundAndNotOwner(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:      "Scrub sink",
		Category:  models.CategoryBathroom,
		Frequency: models.FrequencyDaily,
		ExpReward: 5,
	})

	if _, err := f.svc.Complete(ctx, 777, 1); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("missing instance: err=%v, want ErrNotFound", err)
	}
	if _, err := f.svc.Complete(ctx, instID, 2); !errors.Is(err, engine.ErrNotOwner) {
		t.Fatalf("foreign instance: err=%v, want ErrNotOwner", err)
	}
}

func TestCompleteRestoresAreaCapped(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	area := &models.HomeArea{
		UserID: 1, AreaType: models.CategoryKitchen,
		Name: "Kitchen", CurrentHealth: 90, MaxHealth: 100,
	}
	if err := f.areas.Store(ctx, area); err != nil {
		t.Fatalf("store area: %v", err)
	}
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:             "Mop kitchen floor",
		Category:         models.CategoryKitchen,
		Frequency:        models.FrequencyDaily,
		ExpReward:        10,
		AreaHealthImpact: 15,
	})

	out, err := f.svc.Complete(ctx, instID, 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Rewards.AreaHealthRestored != 15 {
		t.Fatalf("area restored=%d, want 15", out.Rewards.AreaHealthRestored)
	}
	stored := f.areas.byID[area.ID]
	if stored.CurrentHealth != 100 {
		t.Fatalf("area health=%d, want capped at 100", stored.CurrentHealth)
	}
	if stored.LastCleanedAt == nil {
		t.Fatalf("last_cleaned_at not stamped")
	}
}

func TestCompleteMissingAreaIsSilentlySkipped(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:             "Sweep porch",
		Category:         models.CategoryOutdoor,
		Frequency:        models.FrequencyWeekly,
		ExpReward:        10,
		AreaHealthImpact: 20,
	})

	out, err := f.svc.Complete(ctx, instID, 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Rewards.AreaHealthRestored != 0 {
		t.Fatalf("area restored=%d, want 0 when no area exists", out.Rewards.AreaHealthRestored)
	}
	if len(out.Rewards.Warnings) != 0 {
		t.Fatalf("warnings=%v, want none for a missing area", out.Rewards.Warnings)
	}
}

func TestCompleteAreaSaveFailureBecomesWarning(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	area := &models.HomeArea{
		UserID: 1, AreaType: models.CategoryBathroom,
		Name: "Bathroom", CurrentHealth: 50, MaxHealth: 100,
	}
	if err := f.areas.Store(ctx, area); err != nil {
		t.Fatalf("store area: %v", err)
	}
	f.areas.failSave = true

	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:             "Clean mirror",
		Category:         models.CategoryBathroom,
		Frequency:        models.FrequencyWeekly,
		ExpReward:        10,
		AreaHealthImpact: 10,
	})

	out, err := f.svc.Complete(ctx, instID, 1)
	if err != nil {
		t.Fatalf("complete must still succeed: %v", err)
	}
	if out.Rewards.ExpEarned != 10 || out.Rewards.CoinsEarned != 1 {
		t.Fatalf("rewards=%+v, full credit expected despite area failure", out.Rewards)
	}
	if len(out.Rewards.Warnings) != 1 {
		t.Fatalf("warnings=%v, want one area warning", out.Rewards.Warnings)
	}
}

func TestCompleteWearsToolsFlooredAtZero(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	tool := &models.UserTool{
		UserID: 1, ToolID: "sponge", Name: "Sponge",
		CurrentDurability: 3, MaxDurability: 30,
	}
	if err := f.tools.Store(ctx, tool); err != nil {
		t.Fatalf("store tool: %v", err)
	}
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:          "Scrub stovetop",
		Category:      models.CategoryKitchen,
		Frequency:     models.FrequencyWeekly,
		ExpReward:     10,
		ToolsRequired: []string{"sponge"},
		ToolsUsage:    map[string]int{"sponge": 5},
	})

	if _, err := f.svc.Complete(ctx, instID, 1); err != nil {
		t.Fatalf("complete: %v", err)
	}
	stored := f.tools.byID[tool.ID]
	if stored.CurrentDurability != 0 {
		t.Fatalf("durability=%d, want floored at 0", stored.CurrentDurability)
	}
	if stored.UsesCount != 1 {
		t.Fatalf("uses=%d, want 1", stored.UsesCount)
	}
}

func TestCompleteMissingToolRowStillSucceeds(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:          "Vacuum hallway",
		Category:      models.CategoryGeneral,
		Frequency:     models.FrequencyDaily,
		ExpReward:     20,
		ToolsRequired: []string{"vacuum"},
		ToolsUsage:    map[string]int{"vacuum": 2},
	})

	out, err := f.svc.Complete(ctx, instID, 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Rewards.ExpEarned != 20 || out.Rewards.CoinsEarned != 2 {
		t.Fatalf("rewards=%+v, want full credit", out.Rewards)
	}
	if len(out.Rewards.Warnings) != 0 {
		t.Fatalf("warnings=%v, want none for a missing tool", out.Rewards.Warnings)
	}
}

func TestCompleteProfileSaveFailureRollsBack(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	instID := f.seedTask(t, 1, &models.TaskTemplate{
		Name:      "Dust shelves",
		Category:  models.CategoryLivingRoom,
		Frequency: models.FrequencyWeekly,
		ExpReward: 10,
	})
	f.completions.failProfile = true

	if _, err := f.svc.Complete(ctx, instID, 1); err == nil {
		t.Fatalf("expected error when the profile save fails")
	}
	// the instance must stay untouched so the action is retryable
	stored := f.instances.byID[instID]
	if stored.Completed {
		t.Fatalf("instance marked completed despite failed critical path")
	}
	if got := f.profiles.byUser[1].Experience; got != 0 {
		t.Fatalf("experience=%d, want 0 after rollback", got)
	}

	// retry succeeds once the profile store recovers
	f.completions.failProfile = false
	if _, err := f.svc.Complete(ctx, instID, 1); err != nil {
		t.Fatalf("retry after recovery: %v", err)
	}
}

func TestCompleteStreaks(t *testing.T) {
	f := newCompletionFixture(t)
	ctx := context.Background()

	f.seedProfile(t, 1, 0)
	tpl := &models.TaskTemplate{
		Name:      "Make bed",
		Category:  models.CategoryBedroom,
		Frequency: models.FrequencyDaily,
		ExpReward: 5,
	}
	if err := f.templates.Store(ctx, tpl); err != nil {
		t.Fatalf("store template: %v", err)
	}
	a := &models.UserTaskAssignment{UserID: 1, TemplateID: tpl.ID}
	if err := f.assignments.Store(ctx, a); err != nil {
		t.Fatalf("store assignment: %v", err)
	}

	day := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	completeOn := func(d time.Time) {
		t.Helper()
		inst, _, err := f.instances.StoreIfAbsent(ctx, a.ID, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("store instance: %v", err)
		}
		f.svc.now = func() time.Time { return d }
		if _, err := f.svc.Complete(ctx, inst.ID, 1); err != nil {
			t.Fatalf("complete on %v: %v", d, err)
		}
	}

	completeOn(day)
	completeOn(day.AddDate(0, 0, 1))
	completeOn(day.AddDate(0, 0, 2))
	if got := f.profiles.byUser[1].CurrentStreak; got != 3 {
		t.Fatalf("streak after 3 consecutive days=%d, want 3", got)
	}

	// a gap resets the streak but keeps the longest
	completeOn(day.AddDate(0, 0, 5))
	p := f.profiles.byUser[1]
	if p.CurrentStreak != 1 || p.LongestStreak != 3 {
		t.Fatalf("streak=%d longest=%d, want 1/3", p.CurrentStreak, p.LongestStreak)
	}
}
