package repositories

import (
	"context"
	"database/sql"

	"chorequest/internal/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.UserProfile) error
	FindByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	Update(ctx context.Context, p *models.UserProfile) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (
			user_id, level, experience, coins, gems, total_tasks_completed,
			current_streak, longest_streak, last_completed_on, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		RETURNING id, updated_at`
	return r.db.QueryRowContext(ctx, query,
		p.UserID, p.Level, p.Experience, p.Coins, p.Gems, p.TotalTasksCompleted,
		p.CurrentStreak, p.LongestStreak, p.LastCompletedOn,
	).Scan(&p.ID, &p.UpdatedAt)
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, level, experience, coins, gems, total_tasks_completed,
		       current_streak, longest_streak, last_completed_on, updated_at
		FROM user_profiles WHERE user_id = $1`
	p := &models.UserProfile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Level, &p.Experience, &p.Coins, &p.Gems,
		&p.TotalTasksCompleted, &p.CurrentStreak, &p.LongestStreak,
		&p.LastCompletedOn, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *models.UserProfile) error {
	query := `
		UPDATE user_profiles SET
			level=$2, experience=$3, coins=$4, gems=$5, total_tasks_completed=$6,
			current_streak=$7, longest_streak=$8, last_completed_on=$9, updated_at=NOW()
		WHERE user_id=$1`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Level, p.Experience, p.Coins, p.Gems, p.TotalTasksCompleted,
		p.CurrentStreak, p.LongestStreak, p.LastCompletedOn,
	)
	return err
}
