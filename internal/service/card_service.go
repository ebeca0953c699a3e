package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/access"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/metrics"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/repository"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
)

// CardService defines the interface for card business logic
type CardService interface {
	CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	GetCards(ctx context.Context, listID uuid.UUID) ([]*dto.CardResponse, error)
	UpdateCard(ctx context.Context, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	MoveCard(ctx context.Context, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardMovedResponse, error)
	DeleteCard(ctx context.Context, cardID uuid.UUID) (*dto.CardDeletedResponse, error)
}

// cardServiceImpl is the implementation of CardService
type cardServiceImpl struct {
	cardRepo repository.CardRepository
	listRepo repository.ListRepository
	access   access.Resolver
	notifier realtime.Notifier
	activity ActivityService
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCardService creates a new instance of CardService
func NewCardService(
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	accessResolver access.Resolver,
	notifier realtime.Notifier,
	activityService ActivityService,
	m *metrics.Metrics,
	logger *zap.Logger,
) CardService {
	return &cardServiceImpl{
		cardRepo: cardRepo,
		listRepo: listRepo,
		access:   accessResolver,
		notifier: notifier,
		activity: activityService,
		metrics:  m,
		logger:   logger,
	}
}

// CreateCard creates a new card at the end of its list
func (s *cardServiceImpl) CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	// Extract user_id from context (set by auth middleware as uuid.UUID)
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	list, err := s.listRepo.FindByID(ctx, req.ListID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, list.BoardID); err != nil {
		return nil, err
	}

	maxPos, err := s.cardRepo.MaxPosition(ctx, req.ListID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to determine card position", err.Error())
	}

	card := &domain.Card{
		ListID:      req.ListID,
		BoardID:     list.BoardID,
		Title:       req.Title,
		Description: req.Description,
		Position:    maxPos + domain.PositionGap,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create card", err.Error())
	}

	// Increment card creation metric
	if s.metrics != nil {
		s.metrics.IncrementCardCreated()
	}

	resp := toCardResponse(card)
	s.notifier.NotifyCardCreated(ctx, card.BoardID, &resp)
	s.activity.Record(ctx, card.BoardID, userID, domain.ActivityCardCreated, map[string]interface{}{
		"cardId": card.ID.String(),
		"listId": card.ListID.String(),
		"title":  card.Title,
	})

	return &resp, nil
}

// GetCards retrieves the cards of a list ordered by position
func (s *cardServiceImpl) GetCards(ctx context.Context, listID uuid.UUID) ([]*dto.CardResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "List not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch list", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, list.BoardID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByList(ctx, listID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch cards", err.Error())
	}

	responses := make([]*dto.CardResponse, len(cards))
	for i, card := range cards {
		resp := toCardResponse(card)
		responses[i] = &resp
	}

	return responses, nil
}

// UpdateCard updates a card's attributes
func (s *cardServiceImpl) UpdateCard(ctx context.Context, cardID uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, card.BoardID); err != nil {
		return nil, err
	}

	// Update fields if provided
	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.IsCompleted != nil {
		card.IsCompleted = *req.IsCompleted
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == uuid.Nil {
			card.AssigneeID = nil
		} else {
			card.AssigneeID = req.AssigneeID
		}
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update card", err.Error())
	}

	resp := toCardResponse(card)
	s.notifier.NotifyCardUpdated(ctx, card.BoardID, &resp)
	s.activity.Record(ctx, card.BoardID, userID, domain.ActivityCardUpdated, map[string]interface{}{
		"cardId": card.ID.String(),
		"title":  card.Title,
	})

	return &resp, nil
}

// MoveCard moves a card to a zero-based index within a target list on the
// same board. The stored position is the midpoint of the new neighbors'
// positions; when the surrounding gap has closed the whole target list is
// renumbered back to multiples of the position gap first.
func (s *cardServiceImpl) MoveCard(ctx context.Context, cardID uuid.UUID, req *dto.MoveCardRequest) (*dto.CardMovedResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, card.BoardID); err != nil {
		return nil, err
	}

	target, err := s.listRepo.FindByID(ctx, req.ListID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Target list not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch target list", err.Error())
	}
	if target.BoardID != card.BoardID {
		return nil, response.NewValidationError("Cannot move a card to another board", "")
	}

	// Future neighbors: the target list's cards in order, without the
	// moving card itself
	cards, err := s.cardRepo.FindByList(ctx, req.ListID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch target list cards", err.Error())
	}
	siblings := make([]*domain.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != card.ID {
			siblings = append(siblings, c)
		}
	}

	index := *req.Index
	if index < 0 {
		index = 0
	}
	if index > len(siblings) {
		index = len(siblings)
	}

	position, renumber := computeMovePosition(siblings, index)
	if renumber {
		positions := make(map[uuid.UUID]int, len(siblings))
		for i, c := range siblings {
			slot := i
			if i >= index {
				slot = i + 1
			}
			positions[c.ID] = (slot + 1) * domain.PositionGap
		}
		if err := s.cardRepo.UpdatePositions(ctx, positions); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to renumber card positions", err.Error())
		}
		position = (index + 1) * domain.PositionGap
	}

	card.ListID = req.ListID
	card.Position = position
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to move card", err.Error())
	}

	moved := &dto.CardMovedResponse{
		ID:       card.ID,
		ListID:   card.ListID,
		Position: card.Position,
	}
	s.notifier.NotifyCardMoved(ctx, card.BoardID, moved)
	s.activity.Record(ctx, card.BoardID, userID, domain.ActivityCardMoved, map[string]interface{}{
		"cardId":   card.ID.String(),
		"listId":   card.ListID.String(),
		"position": card.Position,
	})

	return moved, nil
}

// DeleteCard soft deletes a card
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID uuid.UUID) (*dto.CardDeletedResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, card.BoardID); err != nil {
		return nil, err
	}

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete card", err.Error())
	}

	deleted := &dto.CardDeletedResponse{
		CardID:  card.ID,
		ListID:  card.ListID,
		BoardID: card.BoardID,
	}
	s.notifier.NotifyCardDeleted(ctx, card.BoardID, deleted)
	s.activity.Record(ctx, card.BoardID, userID, domain.ActivityCardDeleted, map[string]interface{}{
		"cardId": card.ID.String(),
		"title":  card.Title,
	})

	return deleted, nil
}

// computeMovePosition returns the sparse position for inserting at index
// among the ordered siblings, or renumber=true when the surrounding gap has
// closed and the list needs respacing before the move can land.
func computeMovePosition(siblings []*domain.Card, index int) (position int, renumber bool) {
	if len(siblings) == 0 {
		return domain.PositionGap, false
	}
	if index == 0 {
		next := siblings[0].Position
		if next <= 1 {
			return 0, true
		}
		return next / 2, false
	}
	if index >= len(siblings) {
		return siblings[len(siblings)-1].Position + domain.PositionGap, false
	}
	prev := siblings[index-1].Position
	next := siblings[index].Position
	if next-prev <= 1 {
		return 0, true
	}
	return (prev + next) / 2, false
}

// toCardResponse converts domain.Card to dto.CardResponse
func toCardResponse(card *domain.Card) dto.CardResponse {
	return dto.CardResponse{
		CardID:       card.ID,
		ListID:       card.ListID,
		BoardID:      card.BoardID,
		Title:        card.Title,
		Description:  card.Description,
		Position:     card.Position,
		IsCompleted:  card.IsCompleted,
		AssigneeID:   card.AssigneeID,
		DueDate:      card.DueDate,
		CommentCount: card.CommentCount,
		CreatedAt:    card.CreatedAt,
		UpdatedAt:    card.UpdatedAt,
	}
}
