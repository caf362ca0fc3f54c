package service

import (
	"context"
	"errors"

	"vidtube/internal/models"
	"vidtube/internal/repository"
)

// Stub repositories with overridable function fields. Methods without an
// override fail the calling test path with an explicit error.

var errStubNotWired = errors.New("stub method not wired")

type stubUserRepo struct {
	getByID              func(ctx context.Context, id uint) (*models.User, error)
	getByIDFresh         func(ctx context.Context, id uint) (*models.User, error)
	getByEmail           func(ctx context.Context, email string) (*models.User, error)
	getByUsername        func(ctx context.Context, username string) (*models.User, error)
	getByUsernameOrEmail func(ctx context.Context, username, email string) (*models.User, error)
	create               func(ctx context.Context, user *models.User) error
	update               func(ctx context.Context, user *models.User) error
	updateRefreshToken   func(ctx context.Context, id uint, refreshToken *string) error
	getChannelProfile    func(ctx context.Context, username string, currentUserID uint) (*models.ChannelProfile, error)
	addWatchHistory      func(ctx context.Context, userID, videoID uint) error
	getWatchHistory      func(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID == nil {
		return nil, errStubNotWired
	}
	return s.getByID(ctx, id)
}

func (s *stubUserRepo) GetByIDFresh(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFresh == nil {
		return nil, errStubNotWired
	}
	return s.getByIDFresh(ctx, id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail == nil {
		return nil, errStubNotWired
	}
	return s.getByEmail(ctx, email)
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername == nil {
		return nil, errStubNotWired
	}
	return s.getByUsername(ctx, username)
}

func (s *stubUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	if s.getByUsernameOrEmail == nil {
		return nil, errStubNotWired
	}
	return s.getByUsernameOrEmail(ctx, username, email)
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.create == nil {
		return errStubNotWired
	}
	return s.create(ctx, user)
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.update == nil {
		return errStubNotWired
	}
	return s.update(ctx, user)
}

func (s *stubUserRepo) UpdateRefreshToken(ctx context.Context, id uint, refreshToken *string) error {
	if s.updateRefreshToken == nil {
		return errStubNotWired
	}
	return s.updateRefreshToken(ctx, id, refreshToken)
}

func (s *stubUserRepo) GetChannelProfile(ctx context.Context, username string, currentUserID uint) (*models.ChannelProfile, error) {
	if s.getChannelProfile == nil {
		return nil, errStubNotWired
	}
	return s.getChannelProfile(ctx, username, currentUserID)
}

func (s *stubUserRepo) AddWatchHistory(ctx context.Context, userID, videoID uint) error {
	if s.addWatchHistory == nil {
		return errStubNotWired
	}
	return s.addWatchHistory(ctx, userID, videoID)
}

func (s *stubUserRepo) GetWatchHistory(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Video], error) {
	if s.getWatchHistory == nil {
		return nil, errStubNotWired
	}
	return s.getWatchHistory(ctx, userID, page, limit)
}

type stubVideoRepo struct {
	create         func(ctx context.Context, video *models.Video) error
	getByID        func(ctx context.Context, id uint, currentUserID uint) (*models.Video, error)
	list           func(ctx context.Context, opts repository.VideoListOptions) (*models.Page[models.Video], error)
	update         func(ctx context.Context, video *models.Video) error
	deleteFn       func(ctx context.Context, id uint) error
	incrementViews func(ctx context.Context, id uint) error
}

func (s *stubVideoRepo) Create(ctx context.Context, video *models.Video) error {
	if s.create == nil {
		return errStubNotWired
	}
	return s.create(ctx, video)
}

func (s *stubVideoRepo) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Video, error) {
	if s.getByID == nil {
		return nil, errStubNotWired
	}
	return s.getByID(ctx, id, currentUserID)
}

func (s *stubVideoRepo) List(ctx context.Context, opts repository.VideoListOptions) (*models.Page[models.Video], error) {
	if s.list == nil {
		return nil, errStubNotWired
	}
	return s.list(ctx, opts)
}

func (s *stubVideoRepo) Update(ctx context.Context, video *models.Video) error {
	if s.update == nil {
		return errStubNotWired
	}
	return s.update(ctx, video)
}

func (s *stubVideoRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return errStubNotWired
	}
	return s.deleteFn(ctx, id)
}

func (s *stubVideoRepo) IncrementViews(ctx context.Context, id uint) error {
	if s.incrementViews == nil {
		return errStubNotWired
	}
	return s.incrementViews(ctx, id)
}

type stubCommentRepo struct {
	create      func(ctx context.Context, comment *models.Comment) error
	getByID     func(ctx context.Context, id uint) (*models.Comment, error)
	listByVideo func(ctx context.Context, videoID uint, currentUserID uint, page, limit int) (*models.Page[models.Comment], error)
	update      func(ctx context.Context, comment *models.Comment) error
	deleteFn    func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.create == nil {
		return errStubNotWired
	}
	return s.create(ctx, comment)
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByID == nil {
		return nil, errStubNotWired
	}
	return s.getByID(ctx, id)
}

func (s *stubCommentRepo) ListByVideo(ctx context.Context, videoID uint, currentUserID uint, page, limit int) (*models.Page[models.Comment], error) {
	if s.listByVideo == nil {
		return nil, errStubNotWired
	}
	return s.listByVideo(ctx, videoID, currentUserID, page, limit)
}

func (s *stubCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if s.update == nil {
		return errStubNotWired
	}
	return s.update(ctx, comment)
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return errStubNotWired
	}
	return s.deleteFn(ctx, id)
}

type stubTweetRepo struct {
	create      func(ctx context.Context, tweet *models.Tweet) error
	getByID     func(ctx context.Context, id uint) (*models.Tweet, error)
	listByOwner func(ctx context.Context, ownerID uint, currentUserID uint, page, limit int) (*models.Page[models.Tweet], error)
	update      func(ctx context.Context, tweet *models.Tweet) error
	deleteFn    func(ctx context.Context, id uint) error
}

func (s *stubTweetRepo) Create(ctx context.Context, tweet *models.Tweet) error {
	if s.create == nil {
		return errStubNotWired
	}
	return s.create(ctx, tweet)
}

func (s *stubTweetRepo) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	if s.getByID == nil {
		return nil, errStubNotWired
	}
	return s.getByID(ctx, id)
}

func (s *stubTweetRepo) ListByOwner(ctx context.Context, ownerID uint, currentUserID uint, page, limit int) (*models.Page[models.Tweet], error) {
	if s.listByOwner == nil {
		return nil, errStubNotWired
	}
	return s.listByOwner(ctx, ownerID, currentUserID, page, limit)
}

func (s *stubTweetRepo) Update(ctx context.Context, tweet *models.Tweet) error {
	if s.update == nil {
		return errStubNotWired
	}
	return s.update(ctx, tweet)
}

func (s *stubTweetRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return errStubNotWired
	}
	return s.deleteFn(ctx, id)
}

type stubLikeRepo struct {
	isLiked         func(ctx context.Context, userID uint, target repository.LikeTarget) (bool, error)
	add             func(ctx context.Context, userID uint, target repository.LikeTarget) error
	remove          func(ctx context.Context, userID uint, target repository.LikeTarget) error
	listLikedVideos func(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Like], error)
}

func (s *stubLikeRepo) IsLiked(ctx context.Context, userID uint, target repository.LikeTarget) (bool, error) {
	if s.isLiked == nil {
		return false, errStubNotWired
	}
	return s.isLiked(ctx, userID, target)
}

func (s *stubLikeRepo) Add(ctx context.Context, userID uint, target repository.LikeTarget) error {
	if s.add == nil {
		return errStubNotWired
	}
	return s.add(ctx, userID, target)
}

func (s *stubLikeRepo) Remove(ctx context.Context, userID uint, target repository.LikeTarget) error {
	if s.remove == nil {
		return errStubNotWired
	}
	return s.remove(ctx, userID, target)
}

func (s *stubLikeRepo) ListLikedVideos(ctx context.Context, userID uint, page, limit int) (*models.Page[models.Like], error) {
	if s.listLikedVideos == nil {
		return nil, errStubNotWired
	}
	return s.listLikedVideos(ctx, userID, page, limit)
}

type stubPlaylistRepo struct {
	create          func(ctx context.Context, playlist *models.Playlist) error
	getByID         func(ctx context.Context, id uint) (*models.Playlist, error)
	getByIDDetailed func(ctx context.Context, id uint) (*models.Playlist, error)
	listByOwner     func(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error)
	update          func(ctx context.Context, playlist *models.Playlist) error
	deleteFn        func(ctx context.Context, id uint) error
	addVideo        func(ctx context.Context, playlistID, videoID uint) error
	removeVideo     func(ctx context.Context, playlistID, videoID uint) error
	hasVideo        func(ctx context.Context, playlistID, videoID uint) (bool, error)
}

func (s *stubPlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	if s.create == nil {
		return errStubNotWired
	}
	return s.create(ctx, playlist)
}

func (s *stubPlaylistRepo) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	if s.getByID == nil {
		return nil, errStubNotWired
	}
	return s.getByID(ctx, id)
}

func (s *stubPlaylistRepo) GetByIDDetailed(ctx context.Context, id uint) (*models.Playlist, error) {
	if s.getByIDDetailed == nil {
		return nil, errStubNotWired
	}
	return s.getByIDDetailed(ctx, id)
}

func (s *stubPlaylistRepo) ListByOwner(ctx context.Context, ownerID uint, page, limit int) (*models.Page[models.Playlist], error) {
	if s.listByOwner == nil {
		return nil, errStubNotWired
	}
	return s.listByOwner(ctx, ownerID, page, limit)
}

func (s *stubPlaylistRepo) Update(ctx context.Context, playlist *models.Playlist) error {
	if s.update == nil {
		return errStubNotWired
	}
	return s.update(ctx, playlist)
}

func (s *stubPlaylistRepo) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return errStubNotWired
	}
	return s.deleteFn(ctx, id)
}

func (s *stubPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	if s.addVideo == nil {
		return errStubNotWired
	}
	return s.addVideo(ctx, playlistID, videoID)
}

func (s *stubPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uint) error {
	if s.removeVideo == nil {
		return errStubNotWired
	}
	return s.removeVideo(ctx, playlistID, videoID)
}

func (s *stubPlaylistRepo) HasVideo(ctx context.Context, playlistID, videoID uint) (bool, error) {
	if s.hasVideo == nil {
		return false, errStubNotWired
	}
	return s.hasVideo(ctx, playlistID, videoID)
}

type stubSubscriptionRepo struct {
	isSubscribed           func(ctx context.Context, subscriberID, channelID uint) (bool, error)
	add                    func(ctx context.Context, subscriberID, channelID uint) error
	remove                 func(ctx context.Context, subscriberID, channelID uint) error
	listSubscribers        func(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.Subscription], error)
	listSubscribedChannels func(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.Subscription], error)
}

func (s *stubSubscriptionRepo) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	if s.isSubscribed == nil {
		return false, errStubNotWired
	}
	return s.isSubscribed(ctx, subscriberID, channelID)
}

func (s *stubSubscriptionRepo) Add(ctx context.Context, subscriberID, channelID uint) error {
	if s.add == nil {
		return errStubNotWired
	}
	return s.add(ctx, subscriberID, channelID)
}

func (s *stubSubscriptionRepo) Remove(ctx context.Context, subscriberID, channelID uint) error {
	if s.remove == nil {
		return errStubNotWired
	}
	return s.remove(ctx, subscriberID, channelID)
}

func (s *stubSubscriptionRepo) ListSubscribers(ctx context.Context, channelID uint, page, limit int) (*models.Page[models.Subscription], error) {
	if s.listSubscribers == nil {
		return nil, errStubNotWired
	}
	return s.listSubscribers(ctx, channelID, page, limit)
}

func (s *stubSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID uint, page, limit int) (*models.Page[models.Subscription], error) {
	if s.listSubscribedChannels == nil {
		return nil, errStubNotWired
	}
	return s.listSubscribedChannels(ctx, subscriberID, page, limit)
}

// stubUploader records uploads and returns deterministic URLs.
type stubUploader struct {
	uploads []string
	err     error
}

func (s *stubUploader) Upload(ctx context.Context, localPath string, kind string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads = append(s.uploads, localPath)
	return "https://cdn.test/" + kind + "/" + localPath, nil
}
