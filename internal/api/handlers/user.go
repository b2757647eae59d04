package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/edh-power/internal/api/response"
	"github.com/ramonehamilton/edh-power/internal/storage"
	"github.com/ramonehamilton/edh-power/internal/storage/models"
)

const maxPlayerNameLength = 50

// UserStore persists player submissions.
type UserStore interface {
	CreateUser(ctx context.Context, in *storage.CreateUserInput) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// UserHandler handles player submission requests.
type UserHandler struct {
	store UserStore
}

// NewUserHandler creates a new UserHandler. A nil store disables the endpoints.
func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

// CreateUser stores a player together with their deck and answers.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		response.ServiceUnavailable(w, errors.New("storage is not configured"))
		return
	}

	var req storage.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	if err := validateCreateUser(&req); err != nil {
		response.BadRequest(w, err)
		return
	}

	user, err := h.store.CreateUser(r.Context(), &req)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, user)
}

// GetUser returns a stored player by ID.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		response.ServiceUnavailable(w, errors.New("storage is not configured"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, errors.New("invalid user ID"))
		return
	}

	user, err := h.store.GetUser(r.Context(), id)
	if errors.Is(err, storage.ErrUserNotFound) {
		response.NotFound(w, err)
		return
	}
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, user)
}

func validateCreateUser(req *storage.CreateUserInput) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.New("name is required")
	}
	if utf8.RuneCountInString(req.Name) > maxPlayerNameLength {
		return fmt.Errorf("name must be at most %d characters", maxPlayerNameLength)
	}

	if _, err := strconv.ParseFloat(strings.TrimSpace(req.OverallScore), 64); err != nil {
		return errors.New("overallScore must be a number")
	}

	if strings.TrimSpace(req.Deck.DeckURL) == "" {
		return errors.New("deck.deckUrl is required")
	}

	a := req.Answers
	answers := map[string]int{
		"theList":          a.TheList,
		"manabase":         a.Manabase,
		"strategy":         a.Strategy,
		"winCondition":     a.WinCondition,
		"speed":            a.Speed,
		"consistency":      a.Consistency,
		"buildPhilosophy":  a.BuildPhilosophy,
		"playerGoal":       a.PlayerGoal,
		"commanderStaples": a.CommanderStaples,
		"winArchetype":     a.WinArchetype,
	}
	for name, v := range answers {
		if v < 0 || v > 10 {
			return fmt.Errorf("answers.%s must be between 0 and 10", name)
		}
	}

	return nil
}
