package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/token"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newRouterServer wires a Server onto a sqlmock-backed DB with the full
// route table registered. Prometheus middleware is left out so repeated
// test servers do not fight over collector registration.
func newRouterServer(t *testing.T) (*fiber.App, *Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := setupMockDB(t)
	cfg := testConfig()

	s := &Server{
		config: cfg,
		db:     db,
		tokens: token.NewService(
			cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
			cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(),
		),
	}
	s.userRepo = repository.NewUserRepository(db)
	s.videoRepo = repository.NewVideoRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)
	s.tweetRepo = repository.NewTweetRepository(db)
	s.likeRepo = repository.NewLikeRepository(db)
	s.playlistRepo = repository.NewPlaylistRepository(db)
	s.subRepo = repository.NewSubscriptionRepository(db)

	s.authService = service.NewAuthService(s.userRepo, s.tokens, nil)
	s.userService = service.NewUserService(s.userRepo, nil)
	s.videoService = service.NewVideoService(s.videoRepo, s.userRepo, nil)
	s.commentService = service.NewCommentService(s.commentRepo, s.videoRepo)
	s.tweetService = service.NewTweetService(s.tweetRepo, s.userRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.videoRepo, s.commentRepo, s.tweetRepo)
	s.playlistService = service.NewPlaylistService(s.playlistRepo, s.videoRepo)
	s.subService = service.NewSubscriptionService(s.subRepo, s.userRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, s, mock
}

func userRows(now time.Time, passwordHash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "full_name", "avatar", "cover_image",
		"password", "refresh_token", "created_at", "updated_at",
	}).AddRow(
		uint(1), "alice", "alice@example.com", "Alice Test",
		"https://cdn.test/avatars/a.png", "",
		passwordHash, nil, now, now,
	)
}

func TestLivenessCheck(t *testing.T) {
	app, _, _ := newRouterServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "up", body["status"])
}

func TestLogin(t *testing.T) {
	t.Run("Success Sets Cookies", func(t *testing.T) {
		app, s, mock := newRouterServer(t)

		hash, err := s.tokens.HashPassword("secret123")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1 OR email = \$2`).
			WithArgs("alice", "", 1).
			WillReturnRows(userRows(time.Now(), hash))

		// Refresh token rotation persists on the user row.
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
			jsonBody(t, map[string]string{"username": "alice", "password": "secret123"}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.APIResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "User logged in successfully", body.Message)

		data, ok := body.Data.(map[string]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, data["access_token"])
		assert.NotEmpty(t, data["refresh_token"])

		var names []string
		for _, c := range resp.Cookies() {
			names = append(names, c.Name)
			assert.True(t, c.HttpOnly, c.Name)
		}
		assert.Contains(t, names, "accessToken")
		assert.Contains(t, names, "refreshToken")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown User", func(t *testing.T) {
		app, _, mock := newRouterServer(t)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1 OR email = \$2`).
			WithArgs("ghost", "", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
			jsonBody(t, map[string]string{"username": "ghost", "password": "whatever"}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		app, s, mock := newRouterServer(t)

		hash, err := s.tokens.HashPassword("right-password")
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1 OR email = \$2`).
			WithArgs("alice", "", 1).
			WillReturnRows(userRows(time.Now(), hash))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
			jsonBody(t, map[string]string{"username": "alice", "password": "wrong"}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Missing Identifier", func(t *testing.T) {
		app, _, _ := newRouterServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
			jsonBody(t, map[string]string{"password": "secret123"}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUserTweets(t *testing.T) {
	t.Run("Returns Page", func(t *testing.T) {
		app, _, mock := newRouterServer(t)
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(1, 1).
			WillReturnRows(userRows(now, "x"))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "tweets" WHERE tweets\.owner_id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery(`FROM "tweets" WHERE tweets\.owner_id = \$1 ORDER BY tweets\.created_at DESC`).
			WithArgs(1, 10).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "owner_id", "content", "created_at", "updated_at", "likes_count", "is_liked",
			}).
				AddRow(uint(11), uint(1), "second tweet", now, now, int64(3), false).
				AddRow(uint(10), uint(1), "first tweet", now.Add(-time.Hour), now, int64(0), false))

		// Preload("Owner")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(1).
			WillReturnRows(userRows(now, "x"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tweets/user/1", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			models.APIResponse
			Data models.Page[models.Tweet] `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, int64(2), body.Data.TotalDocs)
		assert.Equal(t, 1, body.Data.Page)
		require.Len(t, body.Data.Docs, 2)
		assert.Equal(t, "second tweet", body.Data.Docs[0].Content)
		assert.Equal(t, int64(3), body.Data.Docs[0].LikesCount)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Page Is Not An Error", func(t *testing.T) {
		app, _, mock := newRouterServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(7, 1).
			WillReturnRows(userRows(time.Now(), "x"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "tweets"`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM "tweets" WHERE tweets\.owner_id = \$1`).
			WithArgs(7, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "content"}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tweets/user/7", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data models.Page[models.Tweet] `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(0), body.Data.TotalDocs)
		assert.Empty(t, body.Data.Docs)
	})

	t.Run("Invalid Owner ID", func(t *testing.T) {
		app, _, _ := newRouterServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tweets/user/banana", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Invalid user ID", body.Message)
	})
}
