package repository

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository defines persistence operations for playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uint) (*models.Playlist, error)
	GetByIDDetailed(ctx context.Context, id uint) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error)
	Update(ctx context.Context, playlist *models.Playlist) error
	Delete(ctx context.Context, id uint) error
	AddVideo(ctx context.Context, playlistID, videoID uint) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint) error
	HasVideo(ctx context.Context, playlistID, videoID uint) (bool, error)
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new playlist repository.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

// applyPlaylistDetails adds the computed video count and aggregate view
// total, counting only published videos.
func (r *playlistRepository) applyPlaylistDetails(db *gorm.DB) *gorm.DB {
	return db.Select("playlists.*, " +
		"(SELECT COUNT(*) FROM playlist_videos pv JOIN videos v ON v.id = pv.video_id WHERE pv.playlist_id = playlists.id AND v.is_published) as total_videos, " +
		"(SELECT COALESCE(SUM(v.views), 0) FROM playlist_videos pv JOIN videos v ON v.id = pv.video_id WHERE pv.playlist_id = playlists.id AND v.is_published) as total_views")
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID fetches the bare playlist row, enough for ownership checks.
func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Playlist", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &playlist, nil
}

// GetByIDDetailed fetches the playlist with aggregates, its owner, and its
// published videos ordered by when they were added.
func (r *playlistRepository) GetByIDDetailed(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.applyPlaylistDetails(r.db.WithContext(ctx).Model(&models.Playlist{})).
		Preload("Owner").
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Where("videos.is_published = ?", true).
				Order("playlist_videos.created_at ASC")
		}).
		Preload("Videos.Owner").
		First(&playlist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Playlist", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error) {
	countQ := r.db.WithContext(ctx).Model(&models.Playlist{}).
		Where("playlists.owner_id = ?", ownerID)
	findQ := r.applyPlaylistDetails(r.db.WithContext(ctx).Model(&models.Playlist{})).
		Where("playlists.owner_id = ?", ownerID).
		Order("playlists.created_at DESC")

	return paginate[models.Playlist](countQ, findQ, page, limit)
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	err := r.db.WithContext(ctx).Model(playlist).
		Updates(map[string]any{"name": playlist.Name, "description": playlist.Description}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Playlist{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AddVideo inserts the membership row; the composite primary key plus
// ON CONFLICT DO NOTHING makes repeated adds a no-op.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	pv := models.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&pv).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint) error {
	err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *playlistRepository) HasVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
