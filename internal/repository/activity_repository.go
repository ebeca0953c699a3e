package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
)

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	FindByBoard(ctx context.Context, boardID uuid.UUID, page, limit int) ([]*domain.Activity, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create appends an activity entry
func (r *activityRepositoryImpl) Create(ctx context.Context, activity *domain.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return err
	}
	return nil
}

// FindByBoard returns one page of a board's activity entries, newest first,
// along with the total entry count
func (r *activityRepositoryImpl) FindByBoard(ctx context.Context, boardID uuid.UUID, page, limit int) ([]*domain.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("board_id = ?", boardID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []*domain.Activity
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

// DeleteOlderThan hard deletes activity entries created before the cutoff
// and reports how many rows were removed
func (r *activityRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.Activity{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
