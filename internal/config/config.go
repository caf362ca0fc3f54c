// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string `mapstructure:"PORT"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	Env            string `mapstructure:"APP_ENV"`

	AccessTokenSecret  string `mapstructure:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiry  string `mapstructure:"ACCESS_TOKEN_EXPIRY"`
	RefreshTokenSecret string `mapstructure:"REFRESH_TOKEN_SECRET"`
	RefreshTokenExpiry string `mapstructure:"REFRESH_TOKEN_EXPIRY"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MinioPublicURL string `mapstructure:"MINIO_PUBLIC_URL"`

	UploadTempDir string `mapstructure:"UPLOAD_TEMP_DIR"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables alone are enough.
	_ = viper.ReadInConfig()

	viper.SetDefault("PORT", "8000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "vidtube")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ACCESS_TOKEN_SECRET", "access-secret-change-in-production")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "1d")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "refresh-secret-change-in-production")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "10d")
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "vidtube")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("MINIO_PUBLIC_URL", "http://localhost:9000")
	viper.SetDefault("UPLOAD_TEMP_DIR", "./public/temp")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.RefreshTokenSecret == "" {
		return errors.New("REFRESH_TOKEN_SECRET is required")
	}
	if _, err := parseExpiry(c.AccessTokenExpiry); err != nil {
		return fmt.Errorf("invalid ACCESS_TOKEN_EXPIRY: %w", err)
	}
	if _, err := parseExpiry(c.RefreshTokenExpiry); err != nil {
		return fmt.Errorf("invalid REFRESH_TOKEN_EXPIRY: %w", err)
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	if isProduction {
		if c.AccessTokenSecret == "access-secret-change-in-production" ||
			c.RefreshTokenSecret == "refresh-secret-change-in-production" {
			return errors.New("token secrets must be changed from the default values in production")
		}
		if len(c.AccessTokenSecret) < 32 || len(c.RefreshTokenSecret) < 32 {
			return errors.New("token secrets must be at least 32 characters in production")
		}
		if c.AccessTokenSecret == c.RefreshTokenSecret {
			return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
	}

	return nil
}

// AccessTokenTTL returns the parsed access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	d, _ := parseExpiry(c.AccessTokenExpiry)
	return d
}

// RefreshTokenTTL returns the parsed refresh token lifetime.
func (c *Config) RefreshTokenTTL() time.Duration {
	d, _ := parseExpiry(c.RefreshTokenExpiry)
	return d
}

// parseExpiry parses durations accepting a trailing "d" for days on top of
// the standard time.ParseDuration units.
func parseExpiry(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if last := s[len(s)-1]; last == 'd' {
		var days float64
		if _, err := fmt.Sscanf(s[:len(s)-1], "%g", &days); err != nil {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	return time.ParseDuration(s)
}
