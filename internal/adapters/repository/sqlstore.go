package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/studyscore/internal/domain/model"
	"github.com/okian/studyscore/pkg/errkind"
	"github.com/okian/studyscore/pkg/metrics"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// studentRecord is the gorm row for a persisted prediction.
type studentRecord struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	Name       string    `gorm:"size:256;not null;index:idx_students_name"`
	StudyHours float64   `gorm:"not null"`
	Score      float64   `gorm:"not null"`
	ModelType  string    `gorm:"size:32;not null"`
	CreatedAt  time.Time `gorm:"not null;index:idx_students_created_at"`
}

func (studentRecord) TableName() string {
	return "students"
}

func (r studentRecord) toModel() model.Student {
	return model.Student{
		ID:         r.ID,
		Name:       r.Name,
		StudyHours: r.StudyHours,
		Score:      r.Score,
		ModelType:  r.ModelType,
		CreatedAt:  r.CreatedAt,
	}
}

// SQLStore is a Store backed by SQLite through gorm.
type SQLStore struct {
	db           *gorm.DB
	gormLogLevel gormlogger.LogLevel
	autoMigrate  bool
}

// Open opens (and by default migrates) the SQLite database at path.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string, opts ...Option) (*SQLStore, error) {
	const op = "repository.open"
	s := &SQLStore{
		gormLogLevel: gormlogger.Silent,
		autoMigrate:  true,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(s.gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, errkind.Wrap(op, ErrOpen, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errkind.Wrap(op, ErrOpen, err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases shared across calls.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errkind.Wrap(op, ErrOpen, err)
	}

	if s.autoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&studentRecord{}); err != nil {
			_ = sqlDB.Close()
			return nil, errkind.Wrap(op, ErrOpen, fmt.Errorf("migrate: %w", err))
		}
	}

	s.db = db
	return s, nil
}

// Create implements Store.
func (s *SQLStore) Create(ctx context.Context, st model.Student) (model.Student, error) {
	const op = "repository.create"
	if strings.TrimSpace(st.Name) == "" {
		return model.Student{}, errkind.Wrap(op, ErrInvalid, errors.New("empty name"))
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}

	rec := studentRecord{
		ID:         st.ID,
		Name:       st.Name,
		StudyHours: st.StudyHours,
		Score:      st.Score,
		ModelType:  st.ModelType,
		CreatedAt:  st.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		metrics.RecordStoreError()
		return model.Student{}, errkind.Wrap(op, ErrQuery, err)
	}

	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateStudentsTotal(int(n))
	}
	return rec.toModel(), nil
}

// FindByName implements Store.
func (s *SQLStore) FindByName(ctx context.Context, name string) (model.Student, error) {
	const op = "repository.find_by_name"
	var rec studentRecord
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Student{}, errkind.New(op, ErrNotFound)
	}
	if err != nil {
		metrics.RecordStoreError()
		return model.Student{}, errkind.Wrap(op, ErrQuery, err)
	}
	return rec.toModel(), nil
}

// Count implements Store.
func (s *SQLStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&studentRecord{}).Count(&n).Error; err != nil {
		metrics.RecordStoreError()
		return 0, errkind.Wrap("repository.count", ErrQuery, err)
	}
	return n, nil
}

// Close implements Store.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ Store = (*SQLStore)(nil)
