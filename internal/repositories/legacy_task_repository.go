package repositories

import (
	"context"
	"database/sql"
	"time"

	"chorequest/internal/models"
)

// LegacyTaskRepository reads the pre-template flat tasks table. Rows are
// read-only here; new work always goes through templates and assignments.
type LegacyTaskRepository interface {
	ListByUserAndDate(ctx context.Context, userID int64, dueDate time.Time) ([]models.LegacyTask, error)
}

type legacyTaskRepository struct {
	db *sql.DB
}

func NewLegacyTaskRepository(db *sql.DB) LegacyTaskRepository {
	return &legacyTaskRepository{db: db}
}

func (r *legacyTaskRepository) ListByUserAndDate(ctx context.Context, userID int64, dueDate time.Time) ([]models.LegacyTask, error) {
	query := `
		SELECT id, user_id, title, category, due_date, completed, created_at
		FROM legacy_tasks
		WHERE user_id = $1 AND due_date = $2
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID, dueDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LegacyTask
	for rows.Next() {
		var t models.LegacyTask
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Category, &t.DueDate, &t.Completed, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
