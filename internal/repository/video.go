package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/models"

	"gorm.io/gorm"
)

// VideoRepository defines persistence operations for videos, including the
// denormalized detail and listing reads.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Video, error)
	List(ctx context.Context, opts VideoListOptions) (*models.Page[models.Video], error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// VideoListOptions filters and orders the published-video listing.
type VideoListOptions struct {
	Query         string
	OwnerID       uint
	SortBy        string // created_at, views, duration
	SortOrder     string // asc or desc
	Page          int
	Limit         int
	CurrentUserID uint
	// IncludeUnpublished is set when the owner lists their own videos.
	IncludeUnpublished bool
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// applyVideoDetails adds subqueries to fetch like count and liked status in a single query.
func (r *videoRepository) applyVideoDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "videos.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.video_id = videos.id AND likes.user_id = ?) as is_liked", currentUserID)
	}
	return db.Select(selectQuery + ", false as is_liked")
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Video, error) {
	var video models.Video
	err := r.applyVideoDetails(r.db.WithContext(ctx).Model(&models.Video{}), currentUserID).
		Preload("Owner").
		First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Video", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, opts VideoListOptions) (*models.Page[models.Video], error) {
	filter := func(db *gorm.DB) *gorm.DB {
		q := db
		if !opts.IncludeUnpublished {
			q = q.Where("videos.is_published = ?", true)
		}
		if opts.OwnerID != 0 {
			q = q.Where("videos.owner_id = ?", opts.OwnerID)
		}
		if opts.Query != "" {
			like := "%" + opts.Query + "%"
			q = q.Where("videos.title ILIKE ? OR videos.description ILIKE ?", like, like)
		}
		return q
	}

	countQ := filter(r.db.WithContext(ctx).Model(&models.Video{}))
	findQ := filter(r.applyVideoDetails(r.db.WithContext(ctx).Model(&models.Video{}), opts.CurrentUserID)).
		Preload("Owner").
		Order(videoOrderClause(opts.SortBy, opts.SortOrder))

	return paginate[models.Video](countQ, findQ, opts.Page, opts.Limit)
}

// videoOrderClause whitelists sortable columns; anything unrecognized falls
// back to newest-first.
func videoOrderClause(sortBy, sortOrder string) string {
	switch sortBy {
	case "views", "duration", "created_at":
	default:
		sortBy = "created_at"
	}
	if !strings.EqualFold(sortOrder, "asc") {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}
	return fmt.Sprintf("videos.%s %s", sortBy, sortOrder)
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the video together with its dependent rows: likes on the
// video, its comments and their likes, playlist memberships, and watch
// history. All inside one transaction so a partial cascade cannot survive.
func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where(
			"comment_id IN (?)",
			tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", id),
		).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.WatchHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Video{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
