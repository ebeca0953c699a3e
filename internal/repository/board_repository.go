package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
)

// BoardRepository defines the interface for board and membership data access
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, member *domain.BoardMember) error
	FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error)
	FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error)
	RemoveMember(ctx context.Context, boardID, userID uuid.UUID) (int64, error)
}

// boardRepositoryImpl is the GORM implementation of BoardRepository
type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

// Create creates a new board
func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a board by its ID
func (r *boardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByIDWithMembers finds a board by ID with its member rows preloaded
func (r *boardRepositoryImpl) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Members").
		First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindByUser finds all boards where the user is the owner or a member
func (r *boardRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	var boards []*domain.Board
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("owner_id = ? OR id IN (?)",
			userID,
			r.db.Table("board_members").Select("board_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update saves the full board record
func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	if err := r.db.WithContext(ctx).Save(board).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes a board by ID
func (r *boardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Board{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}

// AddMember inserts a membership row
func (r *boardRepositoryImpl) AddMember(ctx context.Context, member *domain.BoardMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return err
	}
	return nil
}

// FindMember finds the membership row for a user on a board
func (r *boardRepositoryImpl) FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	var member domain.BoardMember
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMembers finds all membership rows for a board
func (r *boardRepositoryImpl) FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error) {
	var members []*domain.BoardMember
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// RemoveMember deletes a membership row and reports how many rows matched,
// so callers can tell a removal from a no-op
func (r *boardRepositoryImpl) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&domain.BoardMember{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
