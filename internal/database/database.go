// Package database handles database connections and migrations.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/observability"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormSlogLogger integrates GORM with slog
type gormSlogLogger struct {
	logger *slog.Logger
	Config logger.Config
}

// LogMode sets the logging level and returns a new interface instance.
func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	newlogger := *l
	newlogger.Config.LogLevel = level
	return &newlogger
}

// Info logs an informational message with context.
func (l *gormSlogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Info {
		l.logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Warn logs a warning message with context.
func (l *gormSlogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Warn {
		l.logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.Config.LogLevel >= logger.Error {
		l.logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs trace-level information including SQL queries and execution time.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Config.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.Config.LogLevel >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.logger.ErrorContext(ctx, "GORM query error",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
	case elapsed > l.Config.SlowThreshold && l.Config.SlowThreshold != 0 && l.Config.LogLevel >= logger.Warn:
		l.logger.WarnContext(ctx, "GORM slow query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	case l.Config.LogLevel >= logger.Info:
		l.logger.InfoContext(ctx, "GORM query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	}
}

// Connect opens a database connection using the provided configuration and returns the gorm DB instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		sslMode,
	)

	// Custom GORM logger that uses slog and ignores ErrRecordNotFound
	gormLogger := &gormSlogLogger{
		logger: middleware.Logger,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	middleware.Logger.Info("Database connected successfully")

	registerMetricsCallbacks(db)

	// Production schemas are migrated explicitly via cmd/migrate.
	if cfg.Env != "production" && cfg.Env != "prod" {
		if err := Migrate(db, cfg); err != nil {
			return nil, err
		}
	}

	// Set connection pooling parameters
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return db, nil
}

const metricsStartKey = "metrics:start"

// registerMetricsCallbacks records per-query latency into the Prometheus
// histogram, labeled by operation and table.
func registerMetricsCallbacks(db *gorm.DB) {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(metricsStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(metricsStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			observability.ObserveQuery(operation, tx.Statement.Table, start)
		}
	}

	_ = db.Callback().Create().Before("gorm:create").Register("metrics:before_create", before)
	_ = db.Callback().Create().After("gorm:create").Register("metrics:after_create", after("create"))
	_ = db.Callback().Query().Before("gorm:query").Register("metrics:before_query", before)
	_ = db.Callback().Query().After("gorm:query").Register("metrics:after_query", after("query"))
	_ = db.Callback().Update().Before("gorm:update").Register("metrics:before_update", before)
	_ = db.Callback().Update().After("gorm:update").Register("metrics:after_update", after("update"))
	_ = db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", before)
	_ = db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", after("delete"))
}

// Migrate runs schema migrations.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if err := db.SetupJoinTable(&models.Playlist{}, "Videos", &models.PlaylistVideo{}); err != nil {
		return fmt.Errorf("failed to set up playlist join table: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.Tweet{},
		&models.Like{},
		&models.Playlist{},
		&models.Subscription{},
		&models.WatchHistory{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	middleware.Logger.Info("Database migration completed")
	return nil
}
