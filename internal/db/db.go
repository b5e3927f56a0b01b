package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Harsha-bonthu/pt2/internal/models"
)

const sqlitePrefix = "sqlite:///"

// Connect opens databaseURL, which is either a postgres:// URL or a
// SQLAlchemy-style sqlite:///path URL (sqlite:////abs/path for absolute
// paths).
func Connect(databaseURL string, log *logrus.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	dialector, isSQLite, err := dialectorFor(databaseURL)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if isSQLite {
		sqlDB, err := database.DB()
		if err != nil {
			return nil, fmt.Errorf("access sql pool: %w", err)
		}
		// SQLite allows a single writer; one connection serialises transactions.
		sqlDB.SetMaxOpenConns(1)
	}

	return database, nil
}

// Migrate creates or updates the employees and tasks tables.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&models.Employee{}, &models.Task{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.Open(databaseURL), false, nil

	case strings.HasPrefix(databaseURL, sqlitePrefix):
		path := strings.TrimPrefix(databaseURL, sqlitePrefix)
		if path == "" {
			return nil, false, fmt.Errorf("sqlite database path is empty")
		}
		return sqlite.Open(withPragmas(path)), true, nil

	default:
		return nil, false, fmt.Errorf("unsupported DATABASE_URL scheme: %q", databaseURL)
	}
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close releases the underlying connection pool.
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("access sql pool: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
