package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ramonehamilton/edh-power/internal/storage/models"
)

// AnswerRepository handles database operations for survey answers.
type AnswerRepository interface {
	// Create inserts a user's answers and sets the ID.
	Create(ctx context.Context, answer *models.Answer) error

	// GetByUser retrieves a user's answers. Returns ErrNotFound if absent.
	GetByUser(ctx context.Context, userID int64) (*models.Answer, error)
}

type answerRepository struct {
	db DBTX
}

// NewAnswerRepository creates a new answer repository.
func NewAnswerRepository(db DBTX) AnswerRepository {
	return &answerRepository{db: db}
}

// Create inserts answers into the database.
func (r *answerRepository) Create(ctx context.Context, a *models.Answer) error {
	query := `
		INSERT INTO answers (
			user_id, the_list, manabase, strategy, win_condition, speed,
			consistency, build_philosophy, player_goal, commander_staples,
			win_archetype, active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.UserID,
		a.TheList,
		a.Manabase,
		a.Strategy,
		a.WinCondition,
		a.Speed,
		a.Consistency,
		a.BuildPhilosophy,
		a.PlayerGoal,
		a.CommanderStaples,
		a.WinArchetype,
		boolToInt(a.Active),
	)
	if err != nil {
		return fmt.Errorf("failed to create answers: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get answer id: %w", err)
	}
	a.ID = id

	return nil
}

// GetByUser retrieves the answers for a user.
func (r *answerRepository) GetByUser(ctx context.Context, userID int64) (*models.Answer, error) {
	query := `
		SELECT id, user_id, the_list, manabase, strategy, win_condition, speed,
		       consistency, build_philosophy, player_goal, commander_staples,
		       win_archetype, active
		FROM answers
		WHERE user_id = ?
	`

	a := &models.Answer{}
	var active int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.TheList,
		&a.Manabase,
		&a.Strategy,
		&a.WinCondition,
		&a.Speed,
		&a.Consistency,
		&a.BuildPhilosophy,
		&a.PlayerGoal,
		&a.CommanderStaples,
		&a.WinArchetype,
		&active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}
	a.Active = active == 1

	return a, nil
}
