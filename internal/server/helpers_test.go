package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/config"
	"vidtube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		AccessTokenSecret:  "test-access-secret-1234567890123456789012",
		RefreshTokenSecret: "test-refresh-secret-123456789012345678901",
		AccessTokenExpiry:  "15m",
		RefreshTokenExpiry: "7d",
	}
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"videoId", "video ID"},
		{"commentId", "comment ID"},
		{"tweetId", "tweet ID"},
		{"playlistId", "playlist ID"},
		{"channelId", "channel ID"},
		{"username", "username"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeParam(tt.param))
		})
	}
}

func TestParsePageParams(t *testing.T) {
	app := fiber.New()
	app.Get("/list", func(c *fiber.Ctx) error {
		page, limit := parsePageParams(c)
		return c.JSON(fiber.Map{"page": page, "limit": limit})
	})

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"Defaults", "", 1, 10},
		{"Explicit", "?page=3&limit=25", 3, 25},
		{"Zero Page", "?page=0", 1, 10},
		{"Negative Page", "?page=-2", 1, 10},
		{"Zero Limit", "?limit=0", 1, 10},
		{"Limit Capped", "?limit=500", 1, 100},
		{"Garbage", "?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/list"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]int
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantPage, body["page"])
			assert.Equal(t, tt.wantLimit, body["limit"])
		})
	}
}

func TestParseID(t *testing.T) {
	s := &Server{config: testConfig()}
	app := fiber.New()
	app.Get("/videos/:videoId", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "videoId")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/videos/42", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(42), body["id"])
	})

	invalid := []string{"abc", "0", "-7", "1.5"}
	for _, raw := range invalid {
		t.Run("Invalid "+raw, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/videos/"+raw, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, http.StatusBadRequest, body.StatusCode)
			assert.Equal(t, "Invalid video ID", body.Message)
		})
	}
}

func TestCurrentUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/anon", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": currentUserID(c)})
	})
	app.Get("/authed", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(9))
		return c.JSON(fiber.Map{"id": currentUserID(c)})
	})

	for path, want := range map[string]float64{"/anon": 0, "/authed": 9} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		var body map[string]float64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		assert.Equal(t, want, body["id"], path)
	}
}
