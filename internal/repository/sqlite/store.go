package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jobboard/internal/common"
)

// Store is a single-file SQLite backend for local runs and tests.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the timestamp source for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open creates the database file if needed and migrates the schema.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := path + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql DB: %w", err)
	}
	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userRecord{}, &jobRecord{}, &applicationRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

type userRecord struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"index;not null"`
	College      *string
	Year         *int
	Skills       datatypes.JSONSlice[string]
	Company      *string
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
}

func (userRecord) TableName() string { return "users" }

type jobRecord struct {
	ID              string                      `gorm:"primaryKey"`
	Title           string                      `gorm:"not null"`
	Description     string                      `gorm:"not null"`
	SkillsRequired  datatypes.JSONSlice[string] `gorm:"not null"`
	Company         string                      `gorm:"not null"`
	Location        string                      `gorm:"not null"`
	Salary          string                      `gorm:"not null"`
	ExperienceLevel string                      `gorm:"not null"`
	JobType         string                      `gorm:"not null"`
	OwnerID         string                      `gorm:"index;not null"`
	Status          string                      `gorm:"index;not null"`
	CreatedAt       time.Time                   `gorm:"index;autoCreateTime:false"`
	UpdatedAt       time.Time                   `gorm:"autoUpdateTime:false"`
}

func (jobRecord) TableName() string { return "jobs" }

type applicationRecord struct {
	ID          string    `gorm:"primaryKey"`
	JobID       string    `gorm:"uniqueIndex:idx_applications_job_student,priority:1;not null"`
	StudentID   string    `gorm:"uniqueIndex:idx_applications_job_student,priority:2;index;not null"`
	Status      string    `gorm:"not null"`
	CoverLetter string    `gorm:"not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (applicationRecord) TableName() string { return "applications" }

// isUniqueViolation relies on TranslateError mapping constraint failures.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewError(common.CodeNotFound, what+" not found", err)
	}
	return common.NewError(common.CodeInternal, "failed to load "+what, err)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
