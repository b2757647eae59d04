package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ramonehamilton/edh-power/internal/storage/models"
)

// DeckRepository handles database operations for submitted decks.
type DeckRepository interface {
	// Create inserts a new deck and sets its ID.
	Create(ctx context.Context, deck *models.Deck) error

	// ListByUser retrieves a user's decks, oldest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.Deck, error)
}

type deckRepository struct {
	db DBTX
}

// NewDeckRepository creates a new deck repository.
func NewDeckRepository(db DBTX) DeckRepository {
	return &deckRepository{db: db}
}

// Create inserts a new deck into the database.
func (r *deckRepository) Create(ctx context.Context, deck *models.Deck) error {
	query := `
		INSERT INTO decks (
			user_id, deck_import, deck_url, deck_name,
			commander, partner_commander, active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		deck.UserID,
		boolToInt(deck.DeckImport),
		deck.DeckURL,
		deck.DeckName,
		deck.Commander,
		deck.PartnerCommander,
		boolToInt(deck.Active),
		deck.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get deck id: %w", err)
	}
	deck.ID = id

	return nil
}

// ListByUser retrieves all decks for a user.
func (r *deckRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Deck, error) {
	query := `
		SELECT id, user_id, deck_import, deck_url, deck_name,
		       commander, partner_commander, active, created_at
		FROM decks
		WHERE user_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*models.Deck
	for rows.Next() {
		deck := &models.Deck{}
		var deckImport, active int
		var name sql.NullString
		if err := rows.Scan(
			&deck.ID,
			&deck.UserID,
			&deckImport,
			&deck.DeckURL,
			&name,
			&deck.Commander,
			&deck.PartnerCommander,
			&active,
			&deck.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		deck.DeckImport = deckImport == 1
		deck.Active = active == 1
		if name.Valid {
			deck.DeckName = &name.String
		}
		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decks: %w", err)
	}

	return decks, nil
}
