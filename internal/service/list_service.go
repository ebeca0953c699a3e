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
	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/repository"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
)

// ListService defines the interface for list business logic
type ListService interface {
	CreateList(ctx context.Context, req *dto.CreateListRequest) (*dto.ListResponse, error)
	GetLists(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]*dto.ListResponse, error)
	UpdateList(ctx context.Context, listID uuid.UUID, req *dto.UpdateListRequest) (*dto.ListResponse, error)
	DeleteList(ctx context.Context, listID uuid.UUID) (*dto.ListDeletedResponse, error)
}

// listServiceImpl is the implementation of ListService
type listServiceImpl struct {
	listRepo repository.ListRepository
	cardRepo repository.CardRepository
	access   access.Resolver
	notifier realtime.Notifier
	activity ActivityService
	logger   *zap.Logger
}

// NewListService creates a new instance of ListService
func NewListService(
	listRepo repository.ListRepository,
	cardRepo repository.CardRepository,
	accessResolver access.Resolver,
	notifier realtime.Notifier,
	activityService ActivityService,
	logger *zap.Logger,
) ListService {
	return &listServiceImpl{
		listRepo: listRepo,
		cardRepo: cardRepo,
		access:   accessResolver,
		notifier: notifier,
		activity: activityService,
		logger:   logger,
	}
}

// CreateList creates a new list at the end of the board
func (s *listServiceImpl) CreateList(ctx context.Context, req *dto.CreateListRequest) (*dto.ListResponse, error) {
	// Extract user_id from context (set by auth middleware as uuid.UUID)
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, req.BoardID); err != nil {
		return nil, err
	}

	maxPos, err := s.listRepo.MaxPosition(ctx, req.BoardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to determine list position", err.Error())
	}

	list := &domain.List{
		BoardID:  req.BoardID,
		Title:    req.Title,
		Position: maxPos + domain.PositionGap,
	}

	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create list", err.Error())
	}

	resp := toListResponse(list)
	s.notifier.NotifyListCreated(ctx, list.BoardID, &resp)
	s.activity.Record(ctx, list.BoardID, userID, domain.ActivityListCreated, map[string]interface{}{
		"listId": list.ID.String(),
		"title":  list.Title,
	})

	return &resp, nil
}

// GetLists retrieves the lists of a board ordered by position
func (s *listServiceImpl) GetLists(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]*dto.ListResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, boardID); err != nil {
		return nil, err
	}

	lists, err := s.listRepo.FindByBoard(ctx, boardID, includeArchived)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch lists", err.Error())
	}

	responses := make([]*dto.ListResponse, len(lists))
	for i, list := range lists {
		resp := toListResponse(list)
		responses[i] = &resp
	}

	return responses, nil
}

// UpdateList updates a list's attributes. Archiving and restoring go through
// here as well and are broadcast as plain list updates.
func (s *listServiceImpl) UpdateList(ctx context.Context, listID uuid.UUID, req *dto.UpdateListRequest) (*dto.ListResponse, error) {
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

	// Update fields if provided
	if req.Title != nil {
		list.Title = *req.Title
	}
	if req.IsArchived != nil {
		list.IsArchived = *req.IsArchived
	}

	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update list", err.Error())
	}

	resp := toListResponse(list)
	s.notifier.NotifyListUpdated(ctx, list.BoardID, &resp)
	s.activity.Record(ctx, list.BoardID, userID, domain.ActivityListUpdated, map[string]interface{}{
		"listId": list.ID.String(),
		"title":  list.Title,
	})

	return &resp, nil
}

// DeleteList soft deletes a list together with its cards
func (s *listServiceImpl) DeleteList(ctx context.Context, listID uuid.UUID) (*dto.ListDeletedResponse, error) {
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

	// Cards go with their list
	if err := s.cardRepo.DeleteByList(ctx, listID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete cards in list", err.Error())
	}

	if err := s.listRepo.Delete(ctx, listID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete list", err.Error())
	}

	deleted := &dto.ListDeletedResponse{
		ListID:  listID,
		BoardID: list.BoardID,
	}
	s.notifier.NotifyListDeleted(ctx, list.BoardID, deleted)
	s.activity.Record(ctx, list.BoardID, userID, domain.ActivityListDeleted, map[string]interface{}{
		"listId": listID.String(),
		"title":  list.Title,
	})

	return deleted, nil
}

// toListResponse converts domain.List to dto.ListResponse
func toListResponse(list *domain.List) dto.ListResponse {
	return dto.ListResponse{
		ListID:     list.ID,
		BoardID:    list.BoardID,
		Title:      list.Title,
		Position:   list.Position,
		IsArchived: list.IsArchived,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}
}
