package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
)

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Card, error)
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	MaxPosition(ctx context.Context, listID uuid.UUID) (int, error)
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error
	AdjustCommentCount(ctx context.Context, cardID uuid.UUID, delta int) error
}

// cardRepositoryImpl is the GORM implementation of CardRepository
type cardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository creates a new instance of CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepositoryImpl{db: db}
}

// Create creates a new card
func (r *cardRepositoryImpl) Create(ctx context.Context, card *domain.Card) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a card by its ID
func (r *cardRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByList finds the cards of a list ordered by position
func (r *cardRepositoryImpl) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("position ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindByBoard finds all cards on a board ordered by list and position
func (r *cardRepositoryImpl) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error) {
	var cards []*domain.Card
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("list_id ASC, position ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Update saves the full card record
func (r *cardRepositoryImpl) Update(ctx context.Context, card *domain.Card) error {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes a card by ID
func (r *cardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Card{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}

// DeleteByList soft deletes every card in a list. Used when the list
// itself is deleted.
func (r *cardRepositoryImpl) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Card{}, "list_id = ?", listID).Error; err != nil {
		return err
	}
	return nil
}

// MaxPosition returns the highest position in a list, or 0 when the list
// has no cards
func (r *cardRepositoryImpl) MaxPosition(ctx context.Context, listID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// UpdatePositions renumbers cards in one transaction. Used when a move
// lands between two adjacent positions and the gap has closed.
func (r *cardRepositoryImpl) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if len(positions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, position := range positions {
			if err := tx.Model(&domain.Card{}).
				Where("id = ?", id).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AdjustCommentCount nudges the denormalized comment counter on a card
func (r *cardRepositoryImpl) AdjustCommentCount(ctx context.Context, cardID uuid.UUID, delta int) error {
	if err := r.db.WithContext(ctx).
		Model(&domain.Card{}).
		Where("id = ?", cardID).
		Update("comment_count", gorm.Expr("comment_count + ?", delta)).Error; err != nil {
		return err
	}
	return nil
}
