package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
	"github.com/mindforge/thinkpath-backend/internal/utils"
)

type Service struct {
	db       *gorm.DB
	log      *logger.Logger
	postgres bool
}

func NewService(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := utils.GetEnv("DB_DRIVER", "postgres", log)
	if driver == "sqlite" {
		path := utils.GetEnv("SQLITE_PATH", "thinkpath.db", log)
		serviceLog.Info("Connecting to sqlite...", "path", path)
		gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
		return &Service{db: gdb, log: serviceLog}, nil
	}

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "thinkpath", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &Service{db: gdb, log: serviceLog, postgres: true}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserPreference{},
		&types.ThinkingProgress{},
		&types.TheoryProgress{},
		&types.TheoryContent{},
		&types.PracticeContent{},
		&types.PracticeSession{},
		&types.StreakLog{},
		&types.LearningPath{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}

	// One active path per user: a concurrent first-request race becomes a
	// constraint violation instead of a silent duplicate.
	if s.postgres {
		if err := s.db.Exec(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_path_per_user
			ON "learning_path" ("user_id")
			WHERE status = 'active' AND deleted_at IS NULL
		`).Error; err != nil {
			return fmt.Errorf("failed to create active-path unique index: %w", err)
		}
	}
	return nil
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
