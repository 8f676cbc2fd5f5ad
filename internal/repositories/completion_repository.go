package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"chorequest/internal/engine"
	"chorequest/internal/models"
)

// CompletionRepository owns the critical path of a completion: marking the
// instance done and saving the profile in one transaction. If the profile
// write fails the instance mark rolls back with it, so a failed completion
// is always retryable.
type CompletionRepository interface {
	Complete(ctx context.Context, inst *models.TaskInstance, profile *models.UserProfile) error
}

type completionRepository struct {
	db *sql.DB
}

func NewCompletionRepository(db *sql.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Complete(ctx context.Context, inst *models.TaskInstance, profile *models.UserProfile) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		// Compare-and-set on the completed flag. Two racing completions
		// serialize here: the loser matches zero rows.
		res, err := tx.ExecContext(ctx, `
			UPDATE task_instances
			SET completed = TRUE, completed_at = $2,
			    exp_earned = $3, area_health_restored = $4, used_tools = $5
			WHERE id = $1 AND completed = FALSE`,
			inst.ID, inst.CompletedAt, inst.ExpEarned,
			inst.AreaHealthRestored, pq.Array(inst.UsedTools),
		)
		if err != nil {
			return fmt.Errorf("mark instance completed: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("mark instance completed: %w", err)
		}
		if n == 0 {
			return engine.ErrAlreadyCompleted
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE user_profiles
			SET level = $2, experience = $3, coins = $4, gems = $5,
			    total_tasks_completed = $6, current_streak = $7,
			    longest_streak = $8, last_completed_on = $9, updated_at = NOW()
			WHERE user_id = $1`,
			profile.UserID, profile.Level, profile.Experience, profile.Coins,
			profile.Gems, profile.TotalTasksCompleted, profile.CurrentStreak,
			profile.LongestStreak, profile.LastCompletedOn,
		)
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	})
}
