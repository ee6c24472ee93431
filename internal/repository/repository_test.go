package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-backend/internal/domain"
)

// setupTestDB starts a throwaway Postgres container and migrates the
// schema. Skipped with -short since it needs a container runtime.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("todos_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Todo{}, &domain.ErrorLog{}))
	return db
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		user := &domain.User{Name: "A", Email: "a@x.com", Password: "hashed"}
		require.NoError(t, repo.Create(ctx, user))
		require.NotEmpty(t, user.ID)

		byID, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", byID.Email)

		byEmail, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("unique email enforced by the store", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{Name: "B", Email: "a@x.com", Password: "hashed"})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("reset token lookup checks expiry in the same query", func(t *testing.T) {
		user := &domain.User{Name: "C", Email: "c@x.com", Password: "hashed"}
		require.NoError(t, repo.Create(ctx, user))

		token := "deadbeef"
		future := time.Now().Add(time.Hour)
		user.ResetToken = &token
		user.ResetTokenExpiry = &future
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByValidResetToken(ctx, token, time.Now())
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		// Same token, expiry in the past: behaves like no token at all.
		past := time.Now().Add(-time.Minute)
		user.ResetTokenExpiry = &past
		require.NoError(t, repo.Save(ctx, user))

		_, err = repo.FindByValidResetToken(ctx, token, time.Now())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("save clears reset fields", func(t *testing.T) {
		user := &domain.User{Name: "D", Email: "d@x.com", Password: "hashed"}
		token := "cafef00d"
		future := time.Now().Add(time.Hour)
		user.ResetToken = &token
		user.ResetTokenExpiry = &future
		require.NoError(t, repo.Create(ctx, user))

		user.ResetToken = nil
		user.ResetTokenExpiry = nil
		require.NoError(t, repo.Save(ctx, user))

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.ResetToken)
		assert.Nil(t, stored.ResetTokenExpiry)
	})
}

func TestTodoRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	const (
		owner = "11111111-1111-1111-1111-111111111111"
		other = "22222222-2222-2222-2222-222222222222"
	)

	// 15 todos for the owner, with distinct creation times so ordering is
	// deterministic, plus one for another user.
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 15; i++ {
		todo := &domain.Todo{
			Title:     fmt.Sprintf("todo %d", i),
			Priority:  domain.PriorityLow,
			UserID:    owner,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			Completed: i <= 4,
		}
		require.NoError(t, repo.Create(ctx, todo))
	}
	require.NoError(t, repo.Create(ctx, &domain.Todo{
		Title:    "not yours",
		Priority: domain.PriorityHigh,
		UserID:   other,
	}))

	t.Run("pagination newest first", func(t *testing.T) {
		page1, err := repo.FindByOwner(ctx, owner, 0, 10)
		require.NoError(t, err)
		require.Len(t, page1, 10)
		assert.Equal(t, "todo 15", page1[0].Title)

		page2, err := repo.FindByOwner(ctx, owner, 10, 10)
		require.NoError(t, err)
		require.Len(t, page2, 5)
		assert.Equal(t, "todo 5", page2[0].Title)
		assert.Equal(t, "todo 1", page2[4].Title)
	})

	t.Run("counts scoped by owner", func(t *testing.T) {
		total, err := repo.CountByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)

		completed, err := repo.CountCompletedByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(4), completed)
	})

	t.Run("scoped lookup hides other owners", func(t *testing.T) {
		page1, err := repo.FindByOwner(ctx, owner, 0, 1)
		require.NoError(t, err)
		require.Len(t, page1, 1)
		id := page1[0].ID

		found, err := repo.FindScoped(ctx, id, owner)
		require.NoError(t, err)
		assert.Equal(t, id, found.ID)

		_, err = repo.FindScoped(ctx, id, other)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("scoped delete reports matched rows", func(t *testing.T) {
		todo := &domain.Todo{Title: "temp", Priority: domain.PriorityLow, UserID: owner}
		require.NoError(t, repo.Create(ctx, todo))

		rows, err := repo.DeleteScoped(ctx, todo.ID, other)
		require.NoError(t, err)
		assert.Zero(t, rows)

		rows, err = repo.DeleteScoped(ctx, todo.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		rows, err = repo.DeleteScoped(ctx, todo.ID, owner)
		require.NoError(t, err)
		assert.Zero(t, rows)
	})

	t.Run("save persists toggled state", func(t *testing.T) {
		todo := &domain.Todo{Title: "flip", Priority: domain.PriorityLow, UserID: owner}
		require.NoError(t, repo.Create(ctx, todo))

		todo.Completed = true
		require.NoError(t, repo.Save(ctx, todo))

		stored, err := repo.FindScoped(ctx, todo.ID, owner)
		require.NoError(t, err)
		assert.True(t, stored.Completed)
	})
}
