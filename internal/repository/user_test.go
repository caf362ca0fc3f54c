package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"vidtube/internal/cache"
	"vidtube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "full_name"}).
					AddRow(1, "alice", "alice@example.com", "Alice Test")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "alice", Email: "alice@example.com", FullName: "Alice Test"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				require.Error(t, err)
				var appErr *models.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, 404, appErr.Status)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser.Username, user.Username)
				assert.Equal(t, tt.expectedUser.Email, user.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_CacheHit(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username", "email"}).
		AddRow(5, "bob", "bob@example.com")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(5, 1).
		WillReturnRows(rows)

	first, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "bob", first.Username)

	// Second read is served from Redis; no further query is expected.
	second, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "bob", second.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDFresh_KeepsSecretsPastCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	secretRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "password", "refresh_token"}).
			AddRow(9, "dana", "$2a$10$hash", "stored.refresh.token")
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(9, 1).
		WillReturnRows(secretRows())

	first, err := repo.GetByID(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, first.RefreshToken)

	// The cached copy went through the JSON tags, so the secrets are gone.
	cached, err := repo.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, cached.RefreshToken)
	assert.Empty(t, cached.Password)

	// The fresh read bypasses the cache and still carries both.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
		WithArgs(9, 1).
		WillReturnRows(secretRows())

	fresh, err := repo.GetByIDFresh(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, fresh.RefreshToken)
	assert.Equal(t, "stored.refresh.token", *fresh.RefreshToken)
	assert.Equal(t, "$2a$10$hash", fresh.Password)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username"}).AddRow(2, "carol")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("carol", 1).
			WillReturnRows(rows)

		user, err := repo.GetByUsername(ctx, "carol")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint(2), user.ID)
	})

	t.Run("Missing Is Not An Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_Create_Conflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New(`duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Test",
		Password: "hash",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Set", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		token := "opaque-refresh-token"
		require.NoError(t, repo.UpdateRefreshToken(ctx, 1, &token))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Clear", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.UpdateRefreshToken(ctx, 1, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
