package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"chorequest/internal/models"
)

type InstanceRepository interface {
	Store(ctx context.Context, inst *models.TaskInstance) error
	// StoreIfAbsent inserts unless an instance already exists for
	// (assignment_id, due_date). Returns created=false on conflict.
	StoreIfAbsent(ctx context.Context, assignmentID int64, dueDate time.Time) (*models.TaskInstance, bool, error)
	FindByID(ctx context.Context, id int64) (*models.TaskInstance, error)
	FindByAssignmentAndDate(ctx context.Context, assignmentID int64, dueDate time.Time) (*models.TaskInstance, error)
	LatestDueDate(ctx context.Context, assignmentID int64) (*time.Time, error)
	ListByUserAndDate(ctx context.Context, userID int64, dueDate time.Time) ([]models.TaskInstance, error)
	ListCompletedSince(ctx context.Context, userID int64, since time.Time) ([]models.TaskInstance, error)
	SetCompleted(ctx context.Context, id int64, completed bool, completedAt *time.Time) error
}

type instanceRepository struct {
	db *sql.DB
}

func NewInstanceRepository(db *sql.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

const instanceColumns = `id, assignment_id, due_date, completed, completed_at,
       exp_earned, area_health_restored, used_tools, created_at`

func scanInstance(row interface{ Scan(...interface{}) error }) (*models.TaskInstance, error) {
	inst := &models.TaskInstance{}
	err := row.Scan(
		&inst.ID, &inst.AssignmentID, &inst.DueDate, &inst.Completed, &inst.CompletedAt,
		&inst.ExpEarned, &inst.AreaHealthRestored, pq.Array(&inst.UsedTools), &inst.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func (r *instanceRepository) Store(ctx context.Context, inst *models.TaskInstance) error {
	query := `
		INSERT INTO task_instances (assignment_id, due_date, completed, used_tools, created_at)
		VALUES ($1, $2, FALSE, $3, NOW())
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		inst.AssignmentID, inst.DueDate, pq.Array(inst.UsedTools),
	).Scan(&inst.ID, &inst.CreatedAt)
}

func (r *instanceRepository) StoreIfAbsent(ctx context.Context, assignmentID int64, dueDate time.Time) (*models.TaskInstance, bool, error) {
	// The unique index on (assignment_id, due_date) makes concurrent
	// generation safe; the losing insert simply returns no row.
	query := `
		INSERT INTO task_instances (assignment_id, due_date, completed, used_tools, created_at)
		VALUES ($1, $2, FALSE, '{}', NOW())
		ON CONFLICT (assignment_id, due_date) DO NOTHING
		RETURNING ` + instanceColumns
	inst, err := scanInstance(r.db.QueryRowContext(ctx, query, assignmentID, dueDate))
	if err == nil {
		return inst, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	existing, err := r.FindByAssignmentAndDate(ctx, assignmentID, dueDate)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *instanceRepository) FindByID(ctx context.Context, id int64) (*models.TaskInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM task_instances WHERE id = $1`
	inst, err := scanInstance(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return inst, err
}

func (r *instanceRepository) FindByAssignmentAndDate(ctx context.Context, assignmentID int64, dueDate time.Time) (*models.TaskInstance, error) {
	query := `SELECT ` + instanceColumns + ` FROM task_instances
		WHERE assignment_id = $1 AND due_date = $2`
	inst, err := scanInstance(r.db.QueryRowContext(ctx, query, assignmentID, dueDate))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return inst, err
}

func (r *instanceRepository) LatestDueDate(ctx context.Context, assignmentID int64) (*time.Time, error) {
	var due *time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(due_date) FROM task_instances WHERE assignment_id = $1`,
		assignmentID,
	).Scan(&due)
	if err != nil {
		return nil, err
	}
	return due, nil
}

func (r *instanceRepository) ListByUserAndDate(ctx context.Context, userID int64, dueDate time.Time) ([]models.TaskInstance, error) {
	query := `
		SELECT i.id, i.assignment_id, i.due_date, i.completed, i.completed_at,
		       i.exp_earned, i.area_health_restored, i.used_tools, i.created_at
		FROM task_instances i
		JOIN user_task_assignments a ON a.id = i.assignment_id
		WHERE a.user_id = $1 AND i.due_date = $2
		ORDER BY i.id`
	rows, err := r.db.QueryContext(ctx, query, userID, dueDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskInstance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inst)
	}
	return out, rows.Err()
}

func (r *instanceRepository) ListCompletedSince(ctx context.Context, userID int64, since time.Time) ([]models.TaskInstance, error) {
	query := `
		SELECT i.id, i.assignment_id, i.due_date, i.completed, i.completed_at,
		       i.exp_earned, i.area_health_restored, i.used_tools, i.created_at
		FROM task_instances i
		JOIN user_task_assignments a ON a.id = i.assignment_id
		WHERE a.user_id = $1 AND i.completed = TRUE AND i.completed_at >= $2
		ORDER BY i.completed_at`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskInstance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inst)
	}
	return out, rows.Err()
}

// SetCompleted is the manual toggle path. It carries no reward snapshot and
// no concurrency guard; the reward engine uses CompletionRepository instead.
func (r *instanceRepository) SetCompleted(ctx context.Context, id int64, completed bool, completedAt *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE task_instances SET completed = $2, completed_at = $3 WHERE id = $1`,
		id, completed, completedAt)
	return err
}
