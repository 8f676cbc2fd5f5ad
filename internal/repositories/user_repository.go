package repositories

import (
	"context"
	"database/sql"
	"time"

	"chorequest/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateDisplayName(ctx context.Context, id int64, displayName string) error
	UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
	RotateRefresh(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.User, error)
	SetTelegramChat(ctx context.Context, id int64, chatID int64) error
	ListWithTelegram(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, display_name, email, password_hash, refresh_token,
       refresh_expires_at, refresh_revoked, telegram_chat_id, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.DisplayName, &u.Email, &u.PasswordHash, &u.RefreshToken,
		&u.RefreshExpiresAt, &u.RefreshRevoked, &u.TelegramChatID, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (display_name, email, password_hash, created_at)
		VALUES ($1,$2,$3,NOW())
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		user.DisplayName, user.Email, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) UpdateDisplayName(ctx context.Context, id int64, displayName string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET display_name = $2 WHERE id = $1`, id, displayName)
	return err
}

func (r *userRepository) UpdateRefresh(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token=$2, refresh_expires_at=$3, refresh_revoked=FALSE WHERE id=$1`,
		id, token, expiresAt)
	return err
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// RotateRefresh swaps the stored refresh token in one statement so a reused
// old token can't race a concurrent rotation.
func (r *userRepository) RotateRefresh(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (*models.User, error) {
	query := `
		UPDATE users SET refresh_token=$2, refresh_expires_at=$3, refresh_revoked=FALSE
		WHERE refresh_token=$1 AND refresh_revoked=FALSE
		RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query, oldToken, newToken, expiresAt))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) SetTelegramChat(ctx context.Context, id int64, chatID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET telegram_chat_id = $2 WHERE id = $1`, id, chatID)
	return err
}

func (r *userRepository) ListWithTelegram(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_chat_id <> 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
