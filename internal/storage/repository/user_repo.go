package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ramonehamilton/edh-power/internal/storage/models"
)

// UserRepository handles database operations for users.
type UserRepository interface {
	// Create inserts a new user and sets its ID.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (player_name, password, player_experience, overall_score, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.PlayerName,
		user.PasswordHash,
		user.PlayerExperience,
		user.OverallScore,
		boolToInt(user.Active),
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by its ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, player_name, password, player_experience, overall_score, active, created_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	var password sql.NullString
	var active int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.PlayerName,
		&password,
		&user.PlayerExperience,
		&user.OverallScore,
		&active,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if password.Valid {
		user.PasswordHash = &password.String
	}
	user.Active = active == 1

	return user, nil
}
