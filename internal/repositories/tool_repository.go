package repositories

import (
	"context"
	"database/sql"

	"chorequest/internal/models"
)

type ToolRepository interface {
	Store(ctx context.Context, tool *models.UserTool) error
	FindByID(ctx context.Context, id int64) (*models.UserTool, error)
	// FindActiveByUserAndTool returns the user's active tool for a stable
	// tool id, or nil when the user doesn't own one.
	FindActiveByUserAndTool(ctx context.Context, userID int64, toolID string) (*models.UserTool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.UserTool, error)
	Update(ctx context.Context, tool *models.UserTool) error
}

type toolRepository struct {
	db *sql.DB
}

func NewToolRepository(db *sql.DB) ToolRepository {
	return &toolRepository{db: db}
}

const toolColumns = `id, user_id, tool_id, name, current_durability, max_durability,
       uses_count, active, created_at`

func scanTool(row interface{ Scan(...interface{}) error }) (*models.UserTool, error) {
	t := &models.UserTool{}
	err := row.Scan(
		&t.ID, &t.UserID, &t.ToolID, &t.Name, &t.CurrentDurability,
		&t.MaxDurability, &t.UsesCount, &t.Active, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *toolRepository) Store(ctx context.Context, tool *models.UserTool) error {
	query := `
		INSERT INTO user_tools (
			user_id, tool_id, name, current_durability, max_durability,
			uses_count, active, created_at
		)
		VALUES ($1,$2,$3,$4,$5,0,TRUE,NOW())
		RETURNING id, uses_count, active, created_at`
	return r.db.QueryRowContext(ctx, query,
		tool.UserID, tool.ToolID, tool.Name, tool.CurrentDurability, tool.MaxDurability,
	).Scan(&tool.ID, &tool.UsesCount, &tool.Active, &tool.CreatedAt)
}

func (r *toolRepository) FindByID(ctx context.Context, id int64) (*models.UserTool, error) {
	query := `SELECT ` + toolColumns + ` FROM user_tools WHERE id = $1`
	t, err := scanTool(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *toolRepository) FindActiveByUserAndTool(ctx context.Context, userID int64, toolID string) (*models.UserTool, error) {
	query := `SELECT ` + toolColumns + ` FROM user_tools
		WHERE user_id = $1 AND tool_id = $2 AND active = TRUE
		ORDER BY created_at DESC LIMIT 1`
	t, err := scanTool(r.db.QueryRowContext(ctx, query, userID, toolID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *toolRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserTool, error) {
	query := `SELECT ` + toolColumns + ` FROM user_tools WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserTool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *toolRepository) Update(ctx context.Context, tool *models.UserTool) error {
	query := `
		UPDATE user_tools SET
			name=$2, current_durability=$3, max_durability=$4,
			uses_count=$5, active=$6
		WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query,
		tool.ID, tool.Name, tool.CurrentDurability, tool.MaxDurability,
		tool.UsesCount, tool.Active,
	)
	return err
}
