package service

import (
	"context"
	"errors"
	"time"

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

// BoardService defines the interface for board business logic
type BoardService interface {
	CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoards(ctx context.Context) ([]*dto.BoardResponse, error)
	GetBoard(ctx context.Context, boardID uuid.UUID) (*dto.BoardDetailResponse, error)
	UpdateBoard(ctx context.Context, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error)
	DeleteBoard(ctx context.Context, boardID uuid.UUID) error
	AddMember(ctx context.Context, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, boardID, memberID uuid.UUID) (*dto.MemberRemovedResponse, error)
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	listRepo  repository.ListRepository
	cardRepo  repository.CardRepository
	access    access.Resolver
	notifier  realtime.Notifier
	activity  ActivityService
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	listRepo repository.ListRepository,
	cardRepo repository.CardRepository,
	accessResolver access.Resolver,
	notifier realtime.Notifier,
	activityService ActivityService,
	m *metrics.Metrics,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		boardRepo: boardRepo,
		listRepo:  listRepo,
		cardRepo:  cardRepo,
		access:    accessResolver,
		notifier:  notifier,
		activity:  activityService,
		metrics:   m,
		logger:    logger,
	}
}

// requireBoardAccess resolves board access for the caller and maps denial to
// the error the handler layer returns. Nonexistent boards deny rather than
// reveal whether the board exists.
func requireBoardAccess(ctx context.Context, resolver access.Resolver, userID, boardID uuid.UUID) error {
	allowed, err := resolver.CanAccess(ctx, userID, boardID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check board access", err.Error())
	}
	if !allowed {
		return response.NewAppError(response.ErrCodeForbidden, "Access to board denied", "")
	}
	return nil
}

// CreateBoard creates a new board owned by the caller. The creator is always
// inserted as the board's first member with the OWNER role.
func (s *boardServiceImpl) CreateBoard(ctx context.Context, req *dto.CreateBoardRequest) (*dto.BoardResponse, error) {
	// Extract user_id from context (set by auth middleware as uuid.UUID)
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	// Boards are private unless the creator says otherwise
	isPrivate := true
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}

	board := &domain.Board{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		IsPrivate:   isPrivate,
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create board", err.Error())
	}

	member := &domain.BoardMember{
		BoardID:  board.ID,
		UserID:   userID,
		Role:     domain.MemberRoleOwner,
		JoinedAt: time.Now(),
	}
	if err := s.boardRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add board owner as member", err.Error())
	}
	board.Members = []domain.BoardMember{*member}

	// Increment board creation metric
	if s.metrics != nil {
		s.metrics.IncrementBoardCreated()
	}

	s.activity.Record(ctx, board.ID, userID, domain.ActivityBoardCreated, map[string]interface{}{
		"title": board.Title,
	})

	return toBoardResponse(board), nil
}

// GetBoards retrieves all boards the caller owns or is a member of
func (s *boardServiceImpl) GetBoards(ctx context.Context) ([]*dto.BoardResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	boards, err := s.boardRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch boards", err.Error())
	}

	responses := make([]*dto.BoardResponse, len(boards))
	for i, board := range boards {
		responses[i] = toBoardResponse(board)
	}

	return responses, nil
}

// GetBoard retrieves a board with its members, active lists and their cards.
// This is the full fetch clients use to load or re-synchronize a board.
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID uuid.UUID) (*dto.BoardDetailResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, boardID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.FindByIDWithMembers(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	lists, err := s.listRepo.FindByBoard(ctx, boardID, false)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch lists", err.Error())
	}

	cards, err := s.cardRepo.FindByBoard(ctx, boardID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch cards", err.Error())
	}

	// Cards on archived lists stay hidden until the list is restored
	activeLists := make(map[uuid.UUID]struct{}, len(lists))
	for _, list := range lists {
		activeLists[list.ID] = struct{}{}
	}
	visible := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if _, ok := activeLists[card.ListID]; ok {
			visible = append(visible, card)
		}
	}

	return toBoardDetailResponse(board, lists, visible), nil
}

// UpdateBoard updates a board's attributes
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*dto.BoardResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, boardID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	// Update fields if provided
	if req.Title != nil {
		board.Title = *req.Title
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.IsPrivate != nil {
		board.IsPrivate = *req.IsPrivate
	}

	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update board", err.Error())
	}

	s.loadMembers(ctx, board)

	resp := toBoardResponse(board)
	s.notifier.NotifyBoardUpdated(ctx, board.ID, resp)
	s.activity.Record(ctx, board.ID, userID, domain.ActivityBoardUpdated, map[string]interface{}{
		"title": board.Title,
	})

	return resp, nil
}

// DeleteBoard soft deletes a board. Only the owner may delete; every client
// subscribed to the board is told to drop it.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, boardID); err != nil {
		return err
	}

	board, err := s.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Board not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch board", err.Error())
	}

	if board.OwnerID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the board owner can delete a board", "")
	}

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete board", err.Error())
	}

	// The board's activity log is gone with it, so nothing is recorded here
	s.notifier.NotifyBoardDeleted(ctx, boardID)

	return nil
}

// AddMember adds a user to a board. Adding a user who is already a member is
// a no-op: the existing membership is returned and nothing is broadcast.
func (s *boardServiceImpl) AddMember(ctx context.Context, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, req.BoardID); err != nil {
		return nil, err
	}

	existing, err := s.boardRepo.FindMember(ctx, req.BoardID, req.UserID)
	if err == nil {
		resp := toMemberResponse(existing)
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check existing membership", err.Error())
	}

	role := domain.MemberRoleMember
	if req.Role != "" {
		role = domain.MemberRole(req.Role)
	}

	member := &domain.BoardMember{
		BoardID:  req.BoardID,
		UserID:   req.UserID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.boardRepo.AddMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add member", err.Error())
	}

	resp := toMemberResponse(member)
	s.notifier.NotifyMemberAdded(ctx, req.BoardID, &resp)
	s.activity.Record(ctx, req.BoardID, userID, domain.ActivityMemberAdded, map[string]interface{}{
		"userId": req.UserID.String(),
		"role":   string(role),
	})

	return &resp, nil
}

// RemoveMember revokes a user's membership. Removing a user who is not a
// member is a no-op; the board owner's membership cannot be revoked.
func (s *boardServiceImpl) RemoveMember(ctx context.Context, boardID, memberID uuid.UUID) (*dto.MemberRemovedResponse, error) {
	userID, exists := ctx.Value("user_id").(uuid.UUID)
	if !exists {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}

	if err := requireBoardAccess(ctx, s.access, userID, boardID); err != nil {
		return nil, err
	}

	removed := &dto.MemberRemovedResponse{
		UserID:  memberID,
		BoardID: boardID,
	}

	member, err := s.boardRepo.FindMember(ctx, boardID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return removed, nil
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check existing membership", err.Error())
	}

	if member.Role == domain.MemberRoleOwner {
		return nil, response.NewValidationError("The board owner cannot be removed", "")
	}

	rows, err := s.boardRepo.RemoveMember(ctx, boardID, memberID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to remove member", err.Error())
	}

	// Broadcast only when a row actually went away
	if rows > 0 {
		s.notifier.NotifyMemberRemoved(ctx, boardID, removed)
		s.activity.Record(ctx, boardID, userID, domain.ActivityMemberRemoved, map[string]interface{}{
			"userId": memberID.String(),
		})
	}

	return removed, nil
}

// loadMembers refreshes a board's member rows for response building. The
// response degrades to an empty member list when the lookup fails.
func (s *boardServiceImpl) loadMembers(ctx context.Context, board *domain.Board) {
	members, err := s.boardRepo.FindMembers(ctx, board.ID)
	if err != nil {
		s.logger.Warn("Failed to fetch board members for response",
			zap.String("board_id", board.ID.String()),
			zap.Error(err))
		return
	}

	board.Members = make([]domain.BoardMember, 0, len(members))
	for _, m := range members {
		board.Members = append(board.Members, *m)
	}
}

// toBoardResponse converts domain.Board to dto.BoardResponse
func toBoardResponse(board *domain.Board) *dto.BoardResponse {
	members := make([]dto.MemberResponse, 0, len(board.Members))
	for i := range board.Members {
		members = append(members, toMemberResponse(&board.Members[i]))
	}

	return &dto.BoardResponse{
		BoardID:     board.ID,
		OwnerID:     board.OwnerID,
		Title:       board.Title,
		Description: board.Description,
		IsPrivate:   board.IsPrivate,
		Members:     members,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

// toMemberResponse converts domain.BoardMember to dto.MemberResponse
func toMemberResponse(member *domain.BoardMember) dto.MemberResponse {
	return dto.MemberResponse{
		ID:       member.ID,
		BoardID:  member.BoardID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}
}

// toBoardDetailResponse converts a board plus its lists and cards to the
// full fetch payload
func toBoardDetailResponse(board *domain.Board, lists []*domain.List, cards []*domain.Card) *dto.BoardDetailResponse {
	listResponses := make([]dto.ListResponse, len(lists))
	for i, list := range lists {
		listResponses[i] = toListResponse(list)
	}

	cardResponses := make([]dto.CardResponse, len(cards))
	for i, card := range cards {
		cardResponses[i] = toCardResponse(card)
	}

	return &dto.BoardDetailResponse{
		BoardResponse: *toBoardResponse(board),
		Lists:         listResponses,
		Cards:         cardResponses,
	}
}
