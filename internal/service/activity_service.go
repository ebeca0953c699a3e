package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/access"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/repository"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
)

const (
	defaultActivityPageLimit = 50
	maxActivityPageLimit     = 100
)

// ActivityService defines the interface for the board activity log
type ActivityService interface {
	// Record appends an activity entry and broadcasts it to the board's
	// room. Recording is best effort: failures are logged and never
	// propagated, so a lost log line cannot fail the mutation it describes.
	Record(ctx context.Context, boardID, userID uuid.UUID, activityType domain.ActivityType, data map[string]interface{})
	GetActivities(ctx context.Context, boardID uuid.UUID, page, limit int) (*dto.ActivityListResponse, error)
}

// activityServiceImpl is the implementation of ActivityService
type activityServiceImpl struct {
	activityRepo repository.ActivityRepository
	access       access.Resolver
	notifier     realtime.Notifier
	logger       *zap.Logger
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(
	activityRepo repository.ActivityRepository,
	accessResolver access.Resolver,
	notifier realtime.Notifier,
	logger *zap.Logger,
) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
		access:       accessResolver,
		notifier:     notifier,
		logger:       logger,
	}
}

// Record appends an activity entry and broadcasts it
func (s *activityServiceImpl) Record(ctx context.Context, boardID, userID uuid.UUID, activityType domain.ActivityType, data map[string]interface{}) {
	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			s.logger.Warn("Failed to marshal activity data",
				zap.String("board_id", boardID.String()),
				zap.String("type", string(activityType)),
				zap.Error(err))
		} else {
			payload = raw
		}
	}

	activity := &domain.Activity{
		BoardID: boardID,
		UserID:  userID,
		Type:    activityType,
		Data:    payload,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Error("Failed to record activity",
			zap.String("board_id", boardID.String()),
			zap.String("type", string(activityType)),
			zap.Error(err))
		return
	}

	resp := toActivityResponse(activity)
	s.notifier.NotifyActivityCreated(ctx, boardID, &resp)
}

// GetActivities retrieves a page of a board's activity log, newest first
func (s *activityServiceImpl) GetActivities(ctx context.Context, boardID uuid.UUID, page, limit int) (*dto.ActivityListResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, boardID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxActivityPageLimit {
		limit = defaultActivityPageLimit
	}

	activities, total, err := s.activityRepo.FindByBoard(ctx, boardID, page, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch activities", err.Error())
	}

	responses := make([]dto.ActivityResponse, len(activities))
	for i, activity := range activities {
		responses[i] = toActivityResponse(activity)
	}

	return &dto.ActivityListResponse{
		Activities: responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// toActivityResponse converts domain.Activity to dto.ActivityResponse
func toActivityResponse(activity *domain.Activity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ActivityID: activity.ID,
		BoardID:    activity.BoardID,
		UserID:     activity.UserID,
		Type:       string(activity.Type),
		Data:       json.RawMessage(activity.Data),
		CreatedAt:  activity.CreatedAt,
	}
}
