package repository

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		user := &models.User{Username: "alice", Email: "alice@example.com"}
		err := repo.Create(ctx, user)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username maps to validation error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint(1), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetByUsername(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT .+ FROM "users"`).
		WithArgs("%ali%", "%ali%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

	users, err := repo.Search(ctx, "ali", 20, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
