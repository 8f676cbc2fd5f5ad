package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"chorequest/internal/models"
)

type TemplateRepository interface {
	Store(ctx context.Context, tpl *models.TaskTemplate) error
	FindByID(ctx context.Context, id int64) (*models.TaskTemplate, error)
	FindAll(ctx context.Context, filter models.TemplateFilter) ([]models.TaskTemplate, error)
	Update(ctx context.Context, tpl *models.TaskTemplate) error
	Delete(ctx context.Context, id int64) error
	CountActiveAssignments(ctx context.Context, templateID int64) (int, error)
}

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func marshalToolsUsage(usage map[string]int) ([]byte, error) {
	if usage == nil {
		usage = map[string]int{}
	}
	return json.Marshal(usage)
}

func (r *templateRepository) Store(ctx context.Context, tpl *models.TaskTemplate) error {
	usage, err := marshalToolsUsage(tpl.ToolsUsage)
	if err != nil {
		return fmt.Errorf("encode tools_usage: %w", err)
	}
	query := `
		INSERT INTO task_templates (
			created_by, name, description, category, frequency, interval_days,
			importance, exp_reward, area_health_impact, tools_required,
			tools_usage, source, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW(),NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		tpl.CreatedBy, tpl.Name, tpl.Description, tpl.Category, tpl.Frequency,
		tpl.IntervalDays, tpl.Importance, tpl.ExpReward, tpl.AreaHealthImpact,
		pq.Array(tpl.ToolsRequired), usage, tpl.Source,
	).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.UpdatedAt)
}

const templateColumns = `id, created_by, name, description, category, frequency,
       interval_days, importance, exp_reward, area_health_impact,
       tools_required, tools_usage, source, created_at, updated_at`

func scanTemplate(row interface{ Scan(...interface{}) error }) (*models.TaskTemplate, error) {
	tpl := &models.TaskTemplate{}
	var usage []byte
	err := row.Scan(
		&tpl.ID, &tpl.CreatedBy, &tpl.Name, &tpl.Description, &tpl.Category,
		&tpl.Frequency, &tpl.IntervalDays, &tpl.Importance, &tpl.ExpReward,
		&tpl.AreaHealthImpact, pq.Array(&tpl.ToolsRequired), &usage,
		&tpl.Source, &tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(usage) > 0 {
		if err := json.Unmarshal(usage, &tpl.ToolsUsage); err != nil {
			return nil, fmt.Errorf("decode tools_usage for template %d: %w", tpl.ID, err)
		}
	}
	return tpl, nil
}

func (r *templateRepository) FindByID(ctx context.Context, id int64) (*models.TaskTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM task_templates WHERE id = $1`
	tpl, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return tpl, err
}

func (r *templateRepository) FindAll(ctx context.Context, filter models.TemplateFilter) ([]models.TaskTemplate, error) {
	baseQuery := `SELECT ` + templateColumns + ` FROM task_templates`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.CreatedBy != nil {
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", argID))
		args = append(args, *filter.CreatedBy)
		argID++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argID))
		args = append(args, *filter.Category)
		argID++
	}
	if filter.Source != nil {
		conditions = append(conditions, fmt.Sprintf("source = $%d", argID))
		args = append(args, *filter.Source)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *tpl)
	}
	return out, rows.Err()
}

func (r *templateRepository) Update(ctx context.Context, tpl *models.TaskTemplate) error {
	usage, err := marshalToolsUsage(tpl.ToolsUsage)
	if err != nil {
		return fmt.Errorf("encode tools_usage: %w", err)
	}
	query := `
		UPDATE task_templates SET
			name=$1, description=$2, category=$3, frequency=$4, interval_days=$5,
			importance=$6, exp_reward=$7, area_health_impact=$8,
			tools_required=$9, tools_usage=$10, updated_at=NOW()
		WHERE id=$11`
	_, err = r.db.ExecContext(ctx, query,
		tpl.Name, tpl.Description, tpl.Category, tpl.Frequency, tpl.IntervalDays,
		tpl.Importance, tpl.ExpReward, tpl.AreaHealthImpact,
		pq.Array(tpl.ToolsRequired), usage, tpl.ID,
	)
	return err
}

func (r *templateRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_templates WHERE id = $1`, id)
	return err
}

func (r *templateRepository) CountActiveAssignments(ctx context.Context, templateID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_task_assignments WHERE template_id = $1 AND active = TRUE`,
		templateID,
	).Scan(&n)
	return n, err
}
