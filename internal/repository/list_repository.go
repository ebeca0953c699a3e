package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
)

// ListRepository defines the interface for list data access
type ListRepository interface {
	Create(ctx context.Context, list *domain.List) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error)
	FindByBoard(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]*domain.List, error)
	Update(ctx context.Context, list *domain.List) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxPosition(ctx context.Context, boardID uuid.UUID) (int, error)
}

// listRepositoryImpl is the GORM implementation of ListRepository
type listRepositoryImpl struct {
	db *gorm.DB
}

// NewListRepository creates a new instance of ListRepository
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepositoryImpl{db: db}
}

// Create creates a new list
func (r *listRepositoryImpl) Create(ctx context.Context, list *domain.List) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a list by its ID
func (r *listRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	var list domain.List
	if err := r.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindByBoard finds the lists of a board ordered by position
func (r *listRepositoryImpl) FindByBoard(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]*domain.List, error) {
	query := r.db.WithContext(ctx).Where("board_id = ?", boardID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}

	var lists []*domain.List
	if err := query.Order("position ASC").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Update saves the full list record
func (r *listRepositoryImpl) Update(ctx context.Context, list *domain.List) error {
	if err := r.db.WithContext(ctx).Save(list).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes a list by ID
func (r *listRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.List{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}

// MaxPosition returns the highest position among a board's active lists,
// or 0 when the board has none
func (r *listRepositoryImpl) MaxPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&domain.List{}).
		Where("board_id = ? AND is_archived = ?", boardID, false).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}
