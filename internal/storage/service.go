package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ramonehamilton/edh-power/internal/storage/models"
	"github.com/ramonehamilton/edh-power/internal/storage/repository"
)

// ErrUserNotFound is returned by GetUser for unknown IDs.
var ErrUserNotFound = errors.New("user not found")

// DeckInput is the deck part of a new submission.
type DeckInput struct {
	DeckName         string `json:"deckName"`
	Commander        string `json:"commander"`
	PartnerCommander string `json:"partnerCommander"`
	DeckURL          string `json:"deckUrl"`
	DeckImport       bool   `json:"deckImport"`
}

// AnswersInput is the self-assessment part of a new submission.
type AnswersInput struct {
	TheList          int `json:"theList"`
	Manabase         int `json:"manabase"`
	Strategy         int `json:"strategy"`
	WinCondition     int `json:"winCondition"`
	Speed            int `json:"speed"`
	Consistency      int `json:"consistency"`
	BuildPhilosophy  int `json:"buildPhilosophy"`
	PlayerGoal       int `json:"playerGoal"`
	CommanderStaples int `json:"commanderStaples"`
	WinArchetype     int `json:"winArchetype"`
}

// CreateUserInput is a full submission: the player, one deck and answers.
type CreateUserInput struct {
	Name             string       `json:"name"`
	Password         string       `json:"password,omitempty"`
	PlayerExperience int          `json:"playerExperience"`
	OverallScore     string       `json:"overallScore"` // decimal string
	Deck             DeckInput    `json:"deck"`
	Answers          AnswersInput `json:"answers"`
}

// Service provides the persistence operations used by the API.
type Service struct {
	db      *DB
	users   repository.UserRepository
	decks   repository.DeckRepository
	answers repository.AnswerRepository
	now     func() time.Time
}

// NewService creates a new storage service.
func NewService(db *DB) *Service {
	return &Service{
		db:      db,
		users:   repository.NewUserRepository(db.Conn()),
		decks:   repository.NewDeckRepository(db.Conn()),
		answers: repository.NewAnswerRepository(db.Conn()),
		now:     time.Now,
	}
}

// CreateUser stores a user together with their deck and answers in one
// transaction. The password, when given, is stored as an Argon2id hash.
func (s *Service) CreateUser(ctx context.Context, in *CreateUserInput) (*models.User, error) {
	if in == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(in.OverallScore), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid overall score %q: %w", in.OverallScore, err)
	}

	now := s.now().UTC().Truncate(time.Second)
	user := &models.User{
		PlayerName:       in.Name,
		PlayerExperience: in.PlayerExperience,
		OverallScore:     score,
		Active:           true,
		CreatedAt:        now,
	}
	if in.Password != "" {
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	deck := &models.Deck{
		DeckImport:       in.Deck.DeckImport,
		DeckURL:          in.Deck.DeckURL,
		Commander:        in.Deck.Commander,
		PartnerCommander: in.Deck.PartnerCommander,
		Active:           true,
		CreatedAt:        now,
	}
	if in.Deck.DeckName != "" {
		name := in.Deck.DeckName
		deck.DeckName = &name
	}

	a := in.Answers
	answer := &models.Answer{
		TheList:          a.TheList,
		Manabase:         a.Manabase,
		Strategy:         a.Strategy,
		WinCondition:     a.WinCondition,
		Speed:            a.Speed,
		Consistency:      a.Consistency,
		BuildPhilosophy:  a.BuildPhilosophy,
		PlayerGoal:       a.PlayerGoal,
		CommanderStaples: a.CommanderStaples,
		WinArchetype:     a.WinArchetype,
		Active:           true,
	}

	err = s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := repository.NewUserRepository(tx).Create(ctx, user); err != nil {
			return err
		}
		deck.UserID = user.ID
		if err := repository.NewDeckRepository(tx).Create(ctx, deck); err != nil {
			return err
		}
		answer.UserID = user.ID
		return repository.NewAnswerRepository(tx).Create(ctx, answer)
	})
	if err != nil {
		return nil, err
	}

	user.Decks = []*models.Deck{deck}
	user.Answer = answer
	return user, nil
}

// GetUser loads a user with their decks and answers.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	decks, err := s.decks.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Decks = decks

	answer, err := s.answers.GetByUser(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		user.Answer = answer
	}

	return user, nil
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}
