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

// CommentService defines the interface for comment business logic
type CommentService interface {
	CreateComment(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComments(ctx context.Context, cardID uuid.UUID) ([]*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentDeletedResponse, error)
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	cardRepo    repository.CardRepository
	access      access.Resolver
	notifier    realtime.Notifier
	activity    ActivityService
	logger      *zap.Logger
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	cardRepo repository.CardRepository,
	accessResolver access.Resolver,
	notifier realtime.Notifier,
	activityService ActivityService,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		cardRepo:    cardRepo,
		access:      accessResolver,
		notifier:    notifier,
		activity:    activityService,
		logger:      logger,
	}
}

// CreateComment adds a comment to a card and bumps the card's denormalized
// comment count
func (s *commentServiceImpl) CreateComment(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	// Extract user_id from context (set by auth middleware as uuid.UUID)
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	card, err := s.cardRepo.FindByID(ctx, req.CardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Card not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch card", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, card.BoardID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		CardID:  card.ID,
		BoardID: card.BoardID,
		UserID:  userID,
		Content: req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	if err := s.cardRepo.AdjustCommentCount(ctx, card.ID, 1); err != nil {
		s.logger.Warn("Failed to bump card comment count",
			zap.String("card_id", card.ID.String()),
			zap.Error(err))
	}

	resp := toCommentResponse(comment)
	s.notifier.NotifyCommentCreated(ctx, comment.BoardID, &resp)
	s.activity.Record(ctx, comment.BoardID, userID, domain.ActivityCommentCreated, map[string]interface{}{
		"commentId": comment.ID.String(),
		"cardId":    comment.CardID.String(),
	})

	return &resp, nil
}

// GetComments retrieves the comments of a card, oldest first
func (s *commentServiceImpl) GetComments(ctx context.Context, cardID uuid.UUID) ([]*dto.CommentResponse, error) {
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

	comments, err := s.commentRepo.FindByCard(ctx, cardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, len(comments))
	for i, comment := range comments {
		resp := toCommentResponse(comment)
		responses[i] = &resp
	}

	return responses, nil
}

// UpdateComment edits a comment's content. Only the author may edit.
func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, comment.BoardID); err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the comment author can edit a comment", "")
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update comment", err.Error())
	}

	resp := toCommentResponse(comment)
	s.notifier.NotifyCommentUpdated(ctx, comment.BoardID, &resp)
	s.activity.Record(ctx, comment.BoardID, userID, domain.ActivityCommentUpdated, map[string]interface{}{
		"commentId": comment.ID.String(),
		"cardId":    comment.CardID.String(),
	})

	return &resp, nil
}

// DeleteComment removes a comment and decrements the card's comment count.
// Only the author may delete.
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID uuid.UUID) (*dto.CommentDeletedResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	if err := requireBoardAccess(ctx, s.access, userID, comment.BoardID); err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the comment author can delete a comment", "")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to delete comment", err.Error())
	}

	if err := s.cardRepo.AdjustCommentCount(ctx, comment.CardID, -1); err != nil {
		s.logger.Warn("Failed to drop card comment count",
			zap.String("card_id", comment.CardID.String()),
			zap.Error(err))
	}

	deleted := &dto.CommentDeletedResponse{
		CommentID: comment.ID,
		CardID:    comment.CardID,
		BoardID:   comment.BoardID,
	}
	s.notifier.NotifyCommentDeleted(ctx, comment.BoardID, deleted)
	s.activity.Record(ctx, comment.BoardID, userID, domain.ActivityCommentDeleted, map[string]interface{}{
		"commentId": comment.ID.String(),
		"cardId":    comment.CardID.String(),
	})

	return deleted, nil
}

// toCommentResponse converts domain.Comment to dto.CommentResponse
func toCommentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		CommentID: comment.ID,
		CardID:    comment.CardID,
		BoardID:   comment.BoardID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
