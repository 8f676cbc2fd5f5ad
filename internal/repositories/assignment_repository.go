package repositories

import (
	"context"
	"database/sql"

	"chorequest/internal/models"
)

type AssignmentRepository interface {
	Store(ctx context.Context, a *models.UserTaskAssignment) error
	FindByID(ctx context.Context, id int64) (*models.UserTaskAssignment, error)
	ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]models.UserTaskAssignment, error)
	Update(ctx context.Context, a *models.UserTaskAssignment) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

const assignmentColumns = `id, user_id, template_id, name_override, description_override,
       interval_override, preferred_weekday, active, created_at, updated_at`

func scanAssignment(row interface{ Scan(...interface{}) error }) (*models.UserTaskAssignment, error) {
	a := &models.UserTaskAssignment{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.TemplateID, &a.NameOverride, &a.DescriptionOverride,
		&a.IntervalOverride, &a.PreferredWeekday, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) Store(ctx context.Context, a *models.UserTaskAssignment) error {
	query := `
		INSERT INTO user_task_assignments (
			user_id, template_id, name_override, description_override,
			interval_override, preferred_weekday, active, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,TRUE,NOW(),NOW())
		RETURNING id, active, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		a.UserID, a.TemplateID, a.NameOverride, a.DescriptionOverride,
		a.IntervalOverride, a.PreferredWeekday,
	).Scan(&a.ID, &a.Active, &a.CreatedAt, &a.UpdatedAt)
}

func (r *assignmentRepository) FindByID(ctx context.Context, id int64) (*models.UserTaskAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM user_task_assignments WHERE id = $1`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *assignmentRepository) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]models.UserTaskAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM user_task_assignments WHERE user_id = $1`
	if activeOnly {
		query += ` AND active = TRUE`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserTaskAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *assignmentRepository) Update(ctx context.Context, a *models.UserTaskAssignment) error {
	query := `
		UPDATE user_task_assignments SET
			name_override=$1, description_override=$2, interval_override=$3,
			preferred_weekday=$4, updated_at=NOW()
		WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query,
		a.NameOverride, a.DescriptionOverride, a.IntervalOverride,
		a.PreferredWeekday, a.ID,
	)
	return err
}

func (r *assignmentRepository) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_task_assignments SET active=$2, updated_at=NOW() WHERE id=$1`,
		id, active)
	return err
}
