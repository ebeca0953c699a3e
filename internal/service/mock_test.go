package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
)

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc              func(ctx context.Context, board *domain.Board) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByIDWithMembersFunc func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByUserFunc          func(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error)
	UpdateFunc              func(ctx context.Context, board *domain.Board) error
	DeleteFunc              func(ctx context.Context, id uuid.UUID) error
	AddMemberFunc           func(ctx context.Context, member *domain.BoardMember) error
	FindMemberFunc          func(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error)
	FindMembersFunc         func(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error)
	RemoveMemberFunc        func(ctx context.Context, boardID, userID uuid.UUID) (int64, error)
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	board.ID = uuid.New()
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDWithMembersFunc != nil {
		return m.FindByIDWithMembersFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) AddMember(ctx context.Context, member *domain.BoardMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	member.ID = uuid.New()
	return nil
}

func (m *MockBoardRepository) FindMember(ctx context.Context, boardID, userID uuid.UUID) (*domain.BoardMember, error) {
	if m.FindMemberFunc != nil {
		return m.FindMemberFunc(ctx, boardID, userID)
	}
	return nil, nil
}

func (m *MockBoardRepository) FindMembers(ctx context.Context, boardID uuid.UUID) ([]*domain.BoardMember, error) {
	if m.FindMembersFunc != nil {
		return m.FindMembersFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockBoardRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) (int64, error) {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, boardID, userID)
	}
	return 0, nil
}

// MockListRepository is a mock implementation of ListRepository
type MockListRepository struct {
	CreateFunc      func(ctx context.Context, list *domain.List) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.List, error)
	FindByBoardFunc func(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]*domain.List, error)
	UpdateFunc      func(ctx context.Context, list *domain.List) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	MaxPositionFunc func(ctx context.Context, boardID uuid.UUID) (int, error)
}

func (m *MockListRepository) Create(ctx context.Context, list *domain.List) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, list)
	}
	list.ID = uuid.New()
	return nil
}

func (m *MockListRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockListRepository) FindByBoard(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]*domain.List, error) {
	if m.FindByBoardFunc != nil {
		return m.FindByBoardFunc(ctx, boardID, includeArchived)
	}
	return nil, nil
}

func (m *MockListRepository) Update(ctx context.Context, list *domain.List) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, list)
	}
	return nil
}

func (m *MockListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockListRepository) MaxPosition(ctx context.Context, boardID uuid.UUID) (int, error) {
	if m.MaxPositionFunc != nil {
		return m.MaxPositionFunc(ctx, boardID)
	}
	return 0, nil
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	CreateFunc             func(ctx context.Context, card *domain.Card) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByListFunc         func(ctx context.Context, listID uuid.UUID) ([]*domain.Card, error)
	FindByBoardFunc        func(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error)
	UpdateFunc             func(ctx context.Context, card *domain.Card) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	DeleteByListFunc       func(ctx context.Context, listID uuid.UUID) error
	MaxPositionFunc        func(ctx context.Context, listID uuid.UUID) (int, error)
	UpdatePositionsFunc    func(ctx context.Context, positions map[uuid.UUID]int) error
	AdjustCommentCountFunc func(ctx context.Context, cardID uuid.UUID, delta int) error
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, card)
	}
	card.ID = uuid.New()
	return nil
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCardRepository) FindByList(ctx context.Context, listID uuid.UUID) ([]*domain.Card, error) {
	if m.FindByListFunc != nil {
		return m.FindByListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *MockCardRepository) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*domain.Card, error) {
	if m.FindByBoardFunc != nil {
		return m.FindByBoardFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCardRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	if m.DeleteByListFunc != nil {
		return m.DeleteByListFunc(ctx, listID)
	}
	return nil
}

func (m *MockCardRepository) MaxPosition(ctx context.Context, listID uuid.UUID) (int, error) {
	if m.MaxPositionFunc != nil {
		return m.MaxPositionFunc(ctx, listID)
	}
	return 0, nil
}

func (m *MockCardRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if m.UpdatePositionsFunc != nil {
		return m.UpdatePositionsFunc(ctx, positions)
	}
	return nil
}

func (m *MockCardRepository) AdjustCommentCount(ctx context.Context, cardID uuid.UUID, delta int) error {
	if m.AdjustCommentCountFunc != nil {
		return m.AdjustCommentCountFunc(ctx, cardID, delta)
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc     func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByCardFunc func(ctx context.Context, cardID uuid.UUID) ([]*domain.Comment, error)
	UpdateFunc     func(ctx context.Context, comment *domain.Comment) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	comment.ID = uuid.New()
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByCardFunc != nil {
		return m.FindByCardFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	CreateFunc          func(ctx context.Context, activity *domain.Activity) error
	FindByBoardFunc     func(ctx context.Context, boardID uuid.UUID, page, limit int) ([]*domain.Activity, int64, error)
	DeleteOlderThanFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activity)
	}
	activity.ID = uuid.New()
	return nil
}

func (m *MockActivityRepository) FindByBoard(ctx context.Context, boardID uuid.UUID, page, limit int) ([]*domain.Activity, int64, error) {
	if m.FindByBoardFunc != nil {
		return m.FindByBoardFunc(ctx, boardID, page, limit)
	}
	return nil, 0, nil
}

func (m *MockActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteOlderThanFunc != nil {
		return m.DeleteOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockAccessResolver is a mock implementation of access.Resolver
type MockAccessResolver struct {
	CanAccessFunc func(ctx context.Context, userID, boardID uuid.UUID) (bool, error)
}

func (m *MockAccessResolver) CanAccess(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
	if m.CanAccessFunc != nil {
		return m.CanAccessFunc(ctx, userID, boardID)
	}
	return true, nil
}

// notifierCall is one recorded broadcast
type notifierCall struct {
	event   string
	boardID uuid.UUID
	payload interface{}
}

// MockNotifier records every broadcast a service emits so tests can assert
// on what was (or was not) sent
type MockNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
}

func (m *MockNotifier) record(event string, boardID uuid.UUID, payload interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifierCall{event: event, boardID: boardID, payload: payload})
}

// events returns the broadcast event names in emission order
func (m *MockNotifier) events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.calls))
	for i, call := range m.calls {
		names[i] = call.event
	}
	return names
}

// last returns the most recent broadcast, or nil when nothing was sent
func (m *MockNotifier) last() *notifierCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	call := m.calls[len(m.calls)-1]
	return &call
}

// find returns the first broadcast with the given event name, or nil
func (m *MockNotifier) find(event string) *notifierCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.calls {
		if call.event == event {
			c := call
			return &c
		}
	}
	return nil
}

func (m *MockNotifier) NotifyBoardUpdated(ctx context.Context, boardID uuid.UUID, board *dto.BoardResponse) {
	m.record(realtime.EventBoardUpdated, boardID, board)
}

func (m *MockNotifier) NotifyBoardDeleted(ctx context.Context, boardID uuid.UUID) {
	m.record(realtime.EventBoardDeleted, boardID, nil)
}

func (m *MockNotifier) NotifyListCreated(ctx context.Context, boardID uuid.UUID, list *dto.ListResponse) {
	m.record(realtime.EventListCreated, boardID, list)
}

func (m *MockNotifier) NotifyListUpdated(ctx context.Context, boardID uuid.UUID, list *dto.ListResponse) {
	m.record(realtime.EventListUpdated, boardID, list)
}

func (m *MockNotifier) NotifyListDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.ListDeletedResponse) {
	m.record(realtime.EventListDeleted, boardID, deleted)
}

func (m *MockNotifier) NotifyCardCreated(ctx context.Context, boardID uuid.UUID, card *dto.CardResponse) {
	m.record(realtime.EventCardCreated, boardID, card)
}

func (m *MockNotifier) NotifyCardUpdated(ctx context.Context, boardID uuid.UUID, card *dto.CardResponse) {
	m.record(realtime.EventCardUpdated, boardID, card)
}

func (m *MockNotifier) NotifyCardMoved(ctx context.Context, boardID uuid.UUID, moved *dto.CardMovedResponse) {
	m.record(realtime.EventCardMoved, boardID, moved)
}

func (m *MockNotifier) NotifyCardDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.CardDeletedResponse) {
	m.record(realtime.EventCardDeleted, boardID, deleted)
}

func (m *MockNotifier) NotifyCommentCreated(ctx context.Context, boardID uuid.UUID, comment *dto.CommentResponse) {
	m.record(realtime.EventCommentCreated, boardID, comment)
}

func (m *MockNotifier) NotifyCommentUpdated(ctx context.Context, boardID uuid.UUID, comment *dto.CommentResponse) {
	m.record(realtime.EventCommentUpdated, boardID, comment)
}

func (m *MockNotifier) NotifyCommentDeleted(ctx context.Context, boardID uuid.UUID, deleted *dto.CommentDeletedResponse) {
	m.record(realtime.EventCommentDeleted, boardID, deleted)
}

func (m *MockNotifier) NotifyActivityCreated(ctx context.Context, boardID uuid.UUID, activity *dto.ActivityResponse) {
	m.record(realtime.EventActivityCreated, boardID, activity)
}

func (m *MockNotifier) NotifyMemberAdded(ctx context.Context, boardID uuid.UUID, member *dto.MemberResponse) {
	m.record(realtime.EventMemberAdded, boardID, member)
}

func (m *MockNotifier) NotifyMemberRemoved(ctx context.Context, boardID uuid.UUID, removed *dto.MemberRemovedResponse) {
	m.record(realtime.EventMemberRemoved, boardID, removed)
}

// recordedActivity is one captured activity log call
type recordedActivity struct {
	boardID      uuid.UUID
	userID       uuid.UUID
	activityType domain.ActivityType
	data         map[string]interface{}
}

// MockActivityService captures Record calls so service tests can assert on
// the audit trail without standing up the real activity pipeline
type MockActivityService struct {
	mu       sync.Mutex
	recorded []recordedActivity

	GetActivitiesFunc func(ctx context.Context, boardID uuid.UUID, page, limit int) (*dto.ActivityListResponse, error)
}

func (m *MockActivityService) Record(ctx context.Context, boardID, userID uuid.UUID, activityType domain.ActivityType, data map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, recordedActivity{
		boardID:      boardID,
		userID:       userID,
		activityType: activityType,
		data:         data,
	})
}

func (m *MockActivityService) GetActivities(ctx context.Context, boardID uuid.UUID, page, limit int) (*dto.ActivityListResponse, error) {
	if m.GetActivitiesFunc != nil {
		return m.GetActivitiesFunc(ctx, boardID, page, limit)
	}
	return nil, nil
}

// types returns the recorded activity types in call order
func (m *MockActivityService) types() []domain.ActivityType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]domain.ActivityType, len(m.recorded))
	for i, r := range m.recorded {
		types[i] = r.activityType
	}
	return types
}
