package repositories

import (
	"context"
	"database/sql"

	"chorequest/internal/models"
)

type AreaRepository interface {
	Store(ctx context.Context, area *models.HomeArea) error
	FindByID(ctx context.Context, id int64) (*models.HomeArea, error)
	FindByUserAndType(ctx context.Context, userID int64, areaType models.Category) (*models.HomeArea, error)
	ListByUser(ctx context.Context, userID int64) ([]models.HomeArea, error)
	Update(ctx context.Context, area *models.HomeArea) error
}

type areaRepository struct {
	db *sql.DB
}

func NewAreaRepository(db *sql.DB) AreaRepository {
	return &areaRepository{db: db}
}

const areaColumns = `id, user_id, area_type, name, current_health, max_health,
       last_cleaned_at, created_at`

func scanArea(row interface{ Scan(...interface{}) error }) (*models.HomeArea, error) {
	a := &models.HomeArea{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.AreaType, &a.Name, &a.CurrentHealth,
		&a.MaxHealth, &a.LastCleanedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *areaRepository) Store(ctx context.Context, area *models.HomeArea) error {
	query := `
		INSERT INTO home_areas (user_id, area_type, name, current_health, max_health, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		area.UserID, area.AreaType, area.Name, area.CurrentHealth, area.MaxHealth,
	).Scan(&area.ID, &area.CreatedAt)
}

func (r *areaRepository) FindByID(ctx context.Context, id int64) (*models.HomeArea, error) {
	query := `SELECT ` + areaColumns + ` FROM home_areas WHERE id = $1`
	a, err := scanArea(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *areaRepository) FindByUserAndType(ctx context.Context, userID int64, areaType models.Category) (*models.HomeArea, error) {
	query := `SELECT ` + areaColumns + ` FROM home_areas WHERE user_id = $1 AND area_type = $2`
	a, err := scanArea(r.db.QueryRowContext(ctx, query, userID, areaType))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *areaRepository) ListByUser(ctx context.Context, userID int64) ([]models.HomeArea, error) {
	query := `SELECT ` + areaColumns + ` FROM home_areas WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HomeArea
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *areaRepository) Update(ctx context.Context, area *models.HomeArea) error {
	query := `
		UPDATE home_areas SET
			name=$2, current_health=$3, max_health=$4, last_cleaned_at=$5
		WHERE id=$1`
	_, err := r.db.ExecContext(ctx, query,
		area.ID, area.Name, area.CurrentHealth, area.MaxHealth, area.LastCleanedAt,
	)
	return err
}
