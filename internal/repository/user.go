package repository

import (
	"context"
	"errors"

	"vidtube/internal/cache"
	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDFresh(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateRefreshToken(ctx context.Context, id uint, refreshToken *string) error
	GetChannelProfile(ctx context.Context, username string, currentUserID uint) (*models.ChannelProfile, error)
	AddWatchHistory(ctx context.Context, userID, videoID uint) error
	GetWatchHistory(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID serves profile reads through the cache. The cached copy goes
// through the JSON-tagged model, so Password and RefreshToken (both
// json:"-") are absent on a cache hit; auth flows use GetByIDFresh.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		fresh, err := r.GetByIDFresh(ctx, id)
		if err != nil {
			return err
		}
		user = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDFresh reads the user row directly, bypassing the cache. Required
// wherever the password hash or stored refresh token is compared or the
// full row is saved back.
func (r *userRepository) GetByIDFresh(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getWhere(ctx, "email = ?", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getWhere(ctx, "username = ?", username)
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	return r.getWhere(ctx, "username = ? OR email = ?", username, email)
}

// getWhere returns (nil, nil) when no row matches.
func (r *userRepository) getWhere(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User with email or username already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User with email or username already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, id uint, refreshToken *string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("refresh_token", refreshToken).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) GetChannelProfile(ctx context.Context, username string, currentUserID uint) (*models.ChannelProfile, error) {
	var profile models.ChannelProfile

	selectQuery := "users.id, users.username, users.full_name, users.email, users.avatar, users.cover_image, " +
		"(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.channel_id = users.id) as subscribers_count, " +
		"(SELECT COUNT(*) FROM subscriptions WHERE subscriptions.subscriber_id = users.id) as subscribed_to_count"
	if currentUserID != 0 {
		selectQuery += ", EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.channel_id = users.id AND subscriptions.subscriber_id = " +
			"?) as is_subscribed"
	} else {
		selectQuery += ", false as is_subscribed"
	}

	q := r.db.WithContext(ctx).Model(&models.User{}).Where("users.username = ?", username)
	if currentUserID != 0 {
		q = q.Select(selectQuery, currentUserID)
	} else {
		q = q.Select(selectQuery)
	}

	if err := q.Take(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Channel", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *userRepository) AddWatchHistory(ctx context.Context, userID, videoID uint) error {
	entry := &models.WatchHistory{UserID: userID, VideoID: videoID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetWatchHistory(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error) {
	countQ := r.db.WithContext(ctx).
		Model(&models.WatchHistory{}).
		Where("watch_histories.user_id = ?", userID)

	findQ := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Joins("JOIN watch_histories ON watch_histories.video_id = videos.id").
		Where("watch_histories.user_id = ?", userID).
		Preload("Owner").
		Order("watch_histories.created_at ASC")

	return paginate[models.Video](countQ, findQ, page, limit)
}
