package server

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"vidtube/internal/middleware"
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) so the
// Fiber error handler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// parsePageParams extracts page and limit query parameters. Pages are
// 1-based; out-of-range values fall back to the defaults.
func parsePageParams(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// parseID extracts a route parameter as a positive uint. On failure it
// writes a 400 response and returns errResponseWritten; callers should
// return nil in that case.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewBadRequestError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a readable label:
// "id" -> "ID", "videoId" -> "video ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// currentUserID returns the authenticated user's ID from locals, or 0 when
// the request is anonymous.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// saveUploadedFile stores a multipart file under the configured temp
// directory and returns its path. The caller removes the file when done.
func (s *Server) saveUploadedFile(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	dir := s.config.UploadTempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveFile(file, path); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}

// formFilePath saves the named multipart file if present and returns its
// temp path together with a cleanup func. A missing file yields an empty
// path and a noop cleanup.
func (s *Server) formFilePath(c *fiber.Ctx, field string) (string, func(), error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", func() {}, nil
	}
	path, err := s.saveUploadedFile(c, file)
	if err != nil {
		return "", func() {}, err
	}
	return path, func() {
		if rmErr := os.Remove(path); rmErr != nil {
			middleware.Logger.Warn("temp file cleanup failed", "path", path, "error", rmErr)
		}
	}, nil
}

func requestContext(c *fiber.Ctx) context.Context {
	return c.UserContext()
}
