// Package repository provides data access layer implementations for the application.
package repository

import (
	"strings"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// paginate counts countQ, fetches the requested page from findQ, and fills a
// 1-based page result. The two queries are separate because findQ usually
// carries computed SELECT aliases and an ORDER BY that a COUNT(*) query
// cannot reference.
func paginate[T any](countQ, findQ *gorm.DB, page, limit int) (*models.Page[T], error) {
	var total int64
	if err := countQ.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	docs := make([]T, 0, limit)
	if err := findQ.Offset((page - 1) * limit).Limit(limit).Find(&docs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.Page[T]{
		Docs:       docs,
		TotalDocs:  total,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
