package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/edh-power/internal/storage/repository"
)

// setupTestService creates a migrated database in a temporary directory.
func setupTestService(t *testing.T) *Service {
	t.Helper()

	config := DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	config.AutoMigrate = true
	db, err := Open(config)
	require.NoError(t, err)

	service := NewService(db)
	service.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { _ = service.Close() })
	return service
}

func sampleInput() *CreateUserInput {
	return &CreateUserInput{
		Name:             "Ana",
		Password:         "hunter2",
		PlayerExperience: 4,
		OverallScore:     " 7.5 ",
		Deck: DeckInput{
			DeckName:   "Kinnan Turbo",
			Commander:  "Kinnan, Bonder Prodigy",
			DeckURL:    "https://moxfield.com/decks/abc123",
			DeckImport: true,
		},
		Answers: AnswersInput{
			TheList: 1, Manabase: 2, Strategy: 3, WinCondition: 4, Speed: 5,
			Consistency: 6, BuildPhilosophy: 7, PlayerGoal: 8, CommanderStaples: 9, WinArchetype: 10,
		},
	}
}

func TestService_CreateAndGetUser(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	created, err := service.CreateUser(ctx, sampleInput())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 7.5, created.OverallScore)
	require.NotNil(t, created.PasswordHash)
	assert.True(t, strings.HasPrefix(*created.PasswordHash, "$argon2id$"))

	got, err := service.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.PlayerName)
	assert.Equal(t, 4, got.PlayerExperience)
	assert.True(t, got.Active)
	assert.True(t, got.CreatedAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))

	ok, err := VerifyPassword("hunter2", *got.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, got.Decks, 1)
	deck := got.Decks[0]
	assert.Equal(t, created.ID, deck.UserID)
	assert.Equal(t, "Kinnan, Bonder Prodigy", deck.Commander)
	assert.Equal(t, "", deck.PartnerCommander)
	assert.True(t, deck.DeckImport)
	require.NotNil(t, deck.DeckName)
	assert.Equal(t, "Kinnan Turbo", *deck.DeckName)

	require.NotNil(t, got.Answer)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, got.Answer.Scores())
}

func TestService_CreateUser_NoPasswordNoDeckName(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	in := sampleInput()
	in.Password = ""
	in.Deck.DeckName = ""
	created, err := service.CreateUser(ctx, in)
	require.NoError(t, err)

	got, err := service.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PasswordHash)
	assert.Nil(t, got.Decks[0].DeckName)
}

func TestService_CreateUser_InvalidScore(t *testing.T) {
	service := setupTestService(t)

	in := sampleInput()
	in.OverallScore = "high"
	_, err := service.CreateUser(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid overall score")

	_, err = service.CreateUser(context.Background(), nil)
	assert.Error(t, err)
}

func TestService_GetUser_NotFound(t *testing.T) {
	service := setupTestService(t)

	_, err := service.GetUser(context.Background(), 999)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestWithTransaction_RollsBack(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := service.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (player_name, player_experience, overall_score, created_at) VALUES (?, ?, ?, ?)`,
			"ghost", 1, 1.0, time.Now()); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errors.Is(err, boom))

	var n int
	require.NoError(t, service.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
}

func TestWithTransaction_PanicRollsBack(t *testing.T) {
	service := setupTestService(t)

	assert.Panics(t, func() {
		_ = service.db.WithTransaction(context.Background(), func(tx *sql.Tx) error {
			panic("boom")
		})
	})
	require.NoError(t, service.db.Ping())
}

func TestAnswerRepository_GetByUser_NotFound(t *testing.T) {
	service := setupTestService(t)

	_, err := repository.NewAnswerRepository(service.db.Conn()).GetByUser(context.Background(), 1)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestMigrationManager_UpDownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")

	mgr, err := NewMigrationManager(path)
	require.NoError(t, err)
	defer func() { _ = mgr.Close() }()

	v, dirty, err := mgr.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, dirty)

	require.NoError(t, mgr.Up())
	require.NoError(t, mgr.Up(), "second Up is a no-op")
	v, _, err = mgr.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	require.NoError(t, mgr.Down())
	v, _, err = mgr.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)

	_, err = Open(DefaultConfig(":memory:"))
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	other, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts differ")

	ok, err := VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, bad := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$AA$AA", "$argon2id$v=19$m=x$AA$AA", "$argon2id$v=19$m=1,t=1,p=1$!!$AA"} {
		_, err := VerifyPassword("x", bad)
		assert.ErrorIs(t, err, ErrInvalidHash, bad)
	}
}
