// Package seed creates demo data for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"vidtube/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures how much data the seeder creates.
type Options struct {
	NumUsers    int
	NumVideos   int
	ShouldClean bool
}

// Seeder populates the database with fake users, videos, comments, tweets,
// likes, playlists and subscriptions.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// ClearAll truncates all seeded tables, children first.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"likes", "watch_histories", "playlist_videos", "playlists",
		"comments", "tweets", "subscriptions", "videos", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Run seeds the full dataset.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumVideos <= 0 {
		opts.NumVideos = 100
	}
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	videos, err := s.seedVideos(users, opts.NumVideos)
	if err != nil {
		return err
	}
	if err := s.seedComments(users, videos); err != nil {
		return err
	}
	tweets, err := s.seedTweets(users)
	if err != nil {
		return err
	}
	if err := s.seedLikes(users, videos, tweets); err != nil {
		return err
	}
	if err := s.seedPlaylists(users, videos); err != nil {
		return err
	}
	if err := s.seedSubscriptions(users); err != nil {
		return err
	}

	log.Printf("Seeded %d users and %d videos", len(users), len(videos))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]models.User, error) {
	// all demo accounts share one password: "password123"
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user := models.User{
			Username:   username,
			Email:      fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			FullName:   gofakeit.Name(),
			Avatar:     fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
			CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/300", gofakeit.UUID()),
			Password:   string(hash),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedVideos(users []models.User, n int) ([]models.Video, error) {
	videos := make([]models.Video, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rand.Intn(len(users))]
		video := models.Video{
			OwnerID:     owner.ID,
			VideoFile:   fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", gofakeit.UUID()),
			Thumbnail:   fmt.Sprintf("https://picsum.photos/seed/%s/640/360", gofakeit.UUID()),
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 3, 8, "\n"),
			Duration:    10 + s.rand.Float64()*1200,
			Views:       int64(s.rand.Intn(50000)),
			IsPublished: s.rand.Intn(10) != 0,
			CreatedAt:   s.pastTime(180),
		}
		if err := s.db.Create(&video).Error; err != nil {
			return nil, fmt.Errorf("seed video: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (s *Seeder) seedComments(users []models.User, videos []models.Video) error {
	for _, video := range videos {
		for i := 0; i < s.rand.Intn(8); i++ {
			comment := models.Comment{
				Content:   gofakeit.Sentence(10),
				OwnerID:   users[s.rand.Intn(len(users))].ID,
				VideoID:   video.ID,
				CreatedAt: s.pastTime(60),
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) seedTweets(users []models.User) ([]models.Tweet, error) {
	var tweets []models.Tweet
	for _, user := range users {
		for i := 0; i < s.rand.Intn(5); i++ {
			tweet := models.Tweet{
				Content:   gofakeit.Sentence(8),
				OwnerID:   user.ID,
				CreatedAt: s.pastTime(90),
			}
			if err := s.db.Create(&tweet).Error; err != nil {
				return nil, fmt.Errorf("seed tweet: %w", err)
			}
			tweets = append(tweets, tweet)
		}
	}
	return tweets, nil
}

func (s *Seeder) seedLikes(users []models.User, videos []models.Video, tweets []models.Tweet) error {
	for _, user := range users {
		for i := 0; i < s.rand.Intn(15); i++ {
			videoID := videos[s.rand.Intn(len(videos))].ID
			like := models.Like{UserID: user.ID, VideoID: &videoID}
			if err := s.db.Exec(
				"INSERT INTO likes (user_id, video_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
				like.UserID, like.VideoID, s.pastTime(30),
			).Error; err != nil {
				return fmt.Errorf("seed video like: %w", err)
			}
		}
		if len(tweets) > 0 {
			for i := 0; i < s.rand.Intn(5); i++ {
				tweetID := tweets[s.rand.Intn(len(tweets))].ID
				if err := s.db.Exec(
					"INSERT INTO likes (user_id, tweet_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
					user.ID, tweetID, s.pastTime(30),
				).Error; err != nil {
					return fmt.Errorf("seed tweet like: %w", err)
				}
			}
		}
	}
	return nil
}

func (s *Seeder) seedPlaylists(users []models.User, videos []models.Video) error {
	for _, user := range users {
		for i := 0; i < s.rand.Intn(3); i++ {
			playlist := models.Playlist{
				Name:        gofakeit.Sentence(3),
				Description: gofakeit.Sentence(8),
				OwnerID:     user.ID,
			}
			if err := s.db.Create(&playlist).Error; err != nil {
				return fmt.Errorf("seed playlist: %w", err)
			}
			for j := 0; j < 2+s.rand.Intn(6); j++ {
				videoID := videos[s.rand.Intn(len(videos))].ID
				if err := s.db.Exec(
					"INSERT INTO playlist_videos (playlist_id, video_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
					playlist.ID, videoID, time.Now(),
				).Error; err != nil {
					return fmt.Errorf("seed playlist video: %w", err)
				}
			}
		}
	}
	return nil
}

func (s *Seeder) seedSubscriptions(users []models.User) error {
	for _, user := range users {
		for i := 0; i < s.rand.Intn(8); i++ {
			channel := users[s.rand.Intn(len(users))]
			if channel.ID == user.ID {
				continue
			}
			if err := s.db.Exec(
				"INSERT INTO subscriptions (subscriber_id, channel_id, created_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
				user.ID, channel.ID, s.pastTime(120),
			).Error; err != nil {
				return fmt.Errorf("seed subscription: %w", err)
			}
		}
	}
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	return time.Now().Add(-time.Duration(s.rand.Intn(maxDays*24)) * time.Hour)
}
