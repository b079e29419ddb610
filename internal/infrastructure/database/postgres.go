package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sangkips/yardops-api/internal/config"
	"github.com/sangkips/yardops-api/internal/domain/entity"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a PostgreSQL connection pool. When a tunnel is
// given, every pooled connection is dialled through it.
func NewPostgresDB(cfg *config.DatabaseConfig, logCfg *config.LogConfig, tunnel *Tunnel) (*gorm.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if tunnel != nil {
		connConfig.DialFunc = tunnel.DialContext
		// The host only exists on the far side of the tunnel
		connConfig.LookupFunc = func(_ context.Context, host string) ([]string, error) {
			return []string{host}, nil
		}
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(logCfg.SQLLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

// AutoMigrate creates the tables owned by this service. The yard tables
// (invoice, solditem, vehicle, ...) belong to the yard system and are never migrated.
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Session{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the initial operator from ADMIN_USERNAME and
// ADMIN_PASSWORD when both are set and the user does not exist yet.
func SeedDefaultData(db *gorm.DB, log *zap.Logger) error {
	username := strings.TrimSpace(viper.GetString("ADMIN_USERNAME"))
	password := viper.GetString("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if count > 0 {
		log.Debug("admin user already exists", zap.String("username", username))
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		Username:     username,
		PasswordHash: string(hashed),
		DisplayName:  viper.GetString("ADMIN_NAME"),
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("admin user created", zap.String("username", username))
	return nil
}
