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

// CompletionOutcome is the success payload of a completion.
type CompletionOutcome struct {
	Task    models.TaskView      `json:"task"`
	Profile *models.UserProfile  `json:"profile"`
	Rewards models.RewardSummary `json:"rewards"`
}

type CompletionService interface {
	// Complete converts one completion event into the full set of state
	// changes: instance snapshot + profile update atomically, then area
	// restore and tool wear as best-effort enrichments.
	Complete(ctx context.Context, instanceID int64, userID int64) (*CompletionOutcome, error)
}

type completionService struct {
	instances   repositories.InstanceRepository
	assignments repositories.AssignmentRepository
	templates   repositories.TemplateRepository
	profiles    repositories.ProfileRepository
	areas       repositories.AreaRepository
	tools       repositories.ToolRepository
	completions repositories.CompletionRepository

	now func() time.Time
}

func NewCompletionService(
	instances repositories.InstanceRepository,
	assignments repositories.AssignmentRepository,
	templates repositories.TemplateRepository,
	profiles repositories.ProfileRepository,
	areas repositories.AreaRepository,
	tools repositories.ToolRepository,
	completions repositories.CompletionRepository,
) CompletionService {
	return &completionService{
		instances:   instances,
		assignments: assignments,
		templates:   templates,
		profiles:    profiles,
		areas:       areas,
		tools:       tools,
		completions: completions,
		now:         time.Now,
	}
}

func (s *completionService) Complete(ctx context.Context, instanceID int64, userID int64) (*CompletionOutcome, error) {
	inst, err := s.instances.FindByID(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, engine.ErrNotFound
	}

	assignment, err := s.assignments.FindByID(ctx, inst.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, engine.ErrNotFound
	}
	if assignment.UserID != userID {
		return nil, engine.ErrNotOwner
	}
	// Fast-path rejection; the authoritative guard is the compare-and-set
	// inside CompletionRepository.Complete.
	if inst.Completed {
		return nil, engine.ErrAlreadyCompleted
	}

	tpl, err := s.templates.FindByID(ctx, assignment.TemplateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("template %d for assignment %d: %w",
			assignment.TemplateID, assignment.ID, engine.ErrNotFound)
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// data-integrity fault, not auto-repaired
		return nil, fmt.Errorf("profile for user %d missing", userID)
	}

	now := s.now()

	// instance snapshot (immutable audit trail)
	inst.Completed = true
	inst.CompletedAt = &now
	inst.ExpEarned = tpl.ExpReward
	inst.AreaHealthRestored = tpl.AreaHealthImpact
	inst.UsedTools = chargedTools(tpl)

	oldExp := profile.Experience
	profile.Experience = oldExp + tpl.ExpReward
	profile.Level = engine.LevelForExperience(profile.Experience)
	coins := engine.CoinsForReward(tpl.ExpReward)
	profile.Coins += coins
	gems := 0
	if engine.DidLevelUp(oldExp, profile.Experience) {
		gems = 1
		profile.Gems++
	}
	profile.TotalTasksCompleted++
	applyStreak(profile, now)

	// Critical path: instance mark + profile save commit together or not
	// at all. On ErrAlreadyCompleted the loser of a race lands here.
	if err := s.completions.Complete(ctx, inst, profile); err != nil {
		return nil, err
	}

	rewards := models.RewardSummary{
		ExpEarned:   tpl.ExpReward,
		CoinsEarned: coins,
		GemsEarned:  gems,
		LevelUp:     gems > 0,
	}

	// Best-effort enrichments from here on: nothing below may fail the
	// completion, the player keeps the credit either way.
	rewards.AreaHealthRestored = s.restoreArea(ctx, userID, tpl, now, &rewards)
	s.wearTools(ctx, userID, tpl, &rewards)

	return &CompletionOutcome{
		Task:    models.ViewFromInstance(inst, assignment, tpl),
		Profile: profile,
		Rewards: rewards,
	}, nil
}

// chargedTools lists the required tools that have a configured durability
// loss; those ids go into the instance snapshot.
func chargedTools(tpl *models.TaskTemplate) []string {
	out := []string{}
	for _, toolID := range tpl.ToolsRequired {
		if loss, ok := tpl.ToolsUsage[toolID]; ok && loss > 0 {
			out = append(out, toolID)
		}
	}
	return out
}

// applyStreak extends the streak when the previous completion was yesterday,
// keeps it on a same-day completion and resets otherwise.
func applyStreak(p *models.UserProfile, now time.Time) {
	today := engine.DateOnly(now)
	if p.LastCompletedOn != nil {
		last := engine.DateOnly(*p.LastCompletedOn)
		switch {
		case last.Equal(today):
			// already counted today
		case last.AddDate(0, 0, 1).Equal(today):
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
	} else {
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastCompletedOn = &today
}

// restoreArea applies the area-health restore for the template's category.
// A missing area is skipped silently; a failed save becomes a warning.
func (s *completionService) restoreArea(ctx context.Context, userID int64, tpl *models.TaskTemplate, now time.Time, rewards *models.RewardSummary) int {
	if tpl.AreaHealthImpact <= 0 {
		return 0
	}
	area, err := s.areas.FindByUserAndType(ctx, userID, tpl.Category)
	if err != nil {
		log.Printf("[complete][area][warn] userID=%d category=%q: %v", userID, tpl.Category, err)
		rewards.Warnings = append(rewards.Warnings,
			fmt.Sprintf("area %q lookup failed", tpl.Category))
		return 0
	}
	if area == nil {
		return 0
	}

	area.CurrentHealth = engine.Restore(area.CurrentHealth, area.MaxHealth, tpl.AreaHealthImpact)
	area.LastCleanedAt = &now
	if err := s.areas.Update(ctx, area); err != nil {
		log.Printf("[complete][area][warn] save userID=%d category=%q: %v", userID, tpl.Category, err)
		rewards.Warnings = append(rewards.Warnings,
			fmt.Sprintf("area %q update failed", tpl.Category))
		return 0
	}
	return tpl.AreaHealthImpact
}

// wearTools charges durability on every required tool with a configured
// loss. Missing tools are skipped; one failing tool never stops the rest.
func (s *completionService) wearTools(ctx context.Context, userID int64, tpl *models.TaskTemplate, rewards *models.RewardSummary) {
	for _, toolID := range tpl.ToolsRequired {
		loss, ok := tpl.ToolsUsage[toolID]
		if !ok || loss <= 0 {
			continue
		}
		tool, err := s.tools.FindActiveByUserAndTool(ctx, userID, toolID)
		if err != nil {
			log.Printf("[complete][tool][warn] userID=%d tool=%q: %v", userID, toolID, err)
			rewards.Warnings = append(rewards.Warnings,
				fmt.Sprintf("tool %q lookup failed", toolID))
			continue
		}
		if tool == nil {
			continue
		}

		tool.CurrentDurability = engine.ApplyUse(tool.CurrentDurability, loss)
		tool.UsesCount++
		if err := s.tools.Update(ctx, tool); err != nil {
			log.Printf("[complete][tool][warn] save userID=%d tool=%q: %v", userID, toolID, err)
			rewards.Warnings = append(rewards.Warnings,
				fmt.Sprintf("tool %q update failed", toolID))
		}
	}
}
