package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
)

// SettingRepository defines the interface for global flag storage
type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, key, value string) (*domain.Setting, error)
}

// settingRepositoryImpl is the GORM implementation of SettingRepository
type settingRepositoryImpl struct {
	db *gorm.DB
}

// NewSettingRepository creates a new instance of SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepositoryImpl{db: db}
}

// Get finds a setting row by key
func (r *settingRepositoryImpl) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var setting domain.Setting
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert inserts the setting row or updates its value when the key exists
func (r *settingRepositoryImpl) Upsert(ctx context.Context, key, value string) (*domain.Setting, error) {
	setting := &domain.Setting{
		Key:   key,
		Value: value,
	}
	setting.ID = uuid.New()
	setting.UpdatedAt = time.Now()

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
