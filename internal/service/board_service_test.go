package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
)

func newBoardService(
	boardRepo *MockBoardRepository,
	listRepo *MockListRepository,
	cardRepo *MockCardRepository,
	resolver *MockAccessResolver,
	notifier *MockNotifier,
	activity *MockActivityService,
) BoardService {
	logger, _ := zap.NewDevelopment()
	return NewBoardService(boardRepo, listRepo, cardRepo, resolver, notifier, activity, nil, logger)
}

func TestBoardService_CreateBoard(t *testing.T) {
	validUserID := uuid.New()

	tests := []struct {
		name        string
		ctx         context.Context
		req         *dto.CreateBoardRequest
		mockBoard   func(*MockBoardRepository)
		wantErr     bool
		wantErrCode string
	}{
		{
			name: "success: creates board with caller as owner member",
			ctx:  context.WithValue(context.Background(), "user_id", validUserID),
			req: &dto.CreateBoardRequest{
				Title:       "Sprint 12",
				Description: "Two week sprint",
			},
			mockBoard: func(m *MockBoardRepository) {
				m.CreateFunc = func(ctx context.Context, board *domain.Board) error {
					board.ID = uuid.New()
					board.CreatedAt = time.Now()
					board.UpdatedAt = time.Now()
					return nil
				}
			},
			wantErr: false,
		},
		{
			name:      "failure: no user id in context",
			ctx:       context.Background(),
			req:       &dto.CreateBoardRequest{Title: "Sprint 12"},
			mockBoard: func(m *MockBoardRepository) {},
			wantErr:   true,

			wantErrCode: response.ErrCodeUnauthorized,
		},
		{
			name: "failure: board insert fails",
			ctx:  context.WithValue(context.Background(), "user_id", validUserID),
			req:  &dto.CreateBoardRequest{Title: "Sprint 12"},
			mockBoard: func(m *MockBoardRepository) {
				m.CreateFunc = func(ctx context.Context, board *domain.Board) error {
					return errors.New("database error")
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockBoardRepo := &MockBoardRepository{}
			tt.mockBoard(mockBoardRepo)
			notifier := &MockNotifier{}
			activity := &MockActivityService{}
			service := newBoardService(mockBoardRepo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, activity)

			// When
			got, err := service.CreateBoard(tt.ctx, tt.req)

			// Then
			if tt.wantErr {
				if err == nil {
					t.Errorf("CreateBoard() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if appErr, ok := err.(*response.AppError); ok {
					if appErr.Code != tt.wantErrCode {
						t.Errorf("CreateBoard() error code = %v, want %v", appErr.Code, tt.wantErrCode)
					}
				}
				return
			}

			if err != nil {
				t.Errorf("CreateBoard() unexpected error = %v", err)
				return
			}
			if got == nil {
				t.Error("CreateBoard() returned nil response")
				return
			}
			if got.Title != tt.req.Title {
				t.Errorf("CreateBoard() Title = %v, want %v", got.Title, tt.req.Title)
			}
			if got.OwnerID != validUserID {
				t.Errorf("CreateBoard() OwnerID = %v, want %v", got.OwnerID, validUserID)
			}
			if !got.IsPrivate {
				t.Error("CreateBoard() IsPrivate = false, new boards default to private")
			}
			if len(got.Members) != 1 {
				t.Fatalf("CreateBoard() members = %d, want the owner membership", len(got.Members))
			}
			if got.Members[0].UserID != validUserID || got.Members[0].Role != string(domain.MemberRoleOwner) {
				t.Errorf("CreateBoard() first member = %+v, want owner %v", got.Members[0], validUserID)
			}
			// Creation is not broadcast: nobody can be in the room yet
			if n := notifier.events(); len(n) != 0 {
				t.Errorf("CreateBoard() broadcast %v, want none", n)
			}
			if types := activity.types(); len(types) != 1 || types[0] != domain.ActivityBoardCreated {
				t.Errorf("CreateBoard() recorded %v, want [BOARD_CREATED]", types)
			}
		})
	}
}

func TestBoardService_CreateBoard_ExplicitVisibility(t *testing.T) {
	userID := uuid.New()
	ctx := context.WithValue(context.Background(), "user_id", userID)
	public := false

	service := newBoardService(&MockBoardRepository{}, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, &MockNotifier{}, &MockActivityService{})

	got, err := service.CreateBoard(ctx, &dto.CreateBoardRequest{Title: "Open board", IsPrivate: &public})
	if err != nil {
		t.Fatalf("CreateBoard() unexpected error = %v", err)
	}
	if got.IsPrivate {
		t.Error("CreateBoard() IsPrivate = true, want false when explicitly public")
	}
}

func TestBoardService_GetBoard(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	activeListID := uuid.New()
	archivedListID := uuid.New()

	board := &domain.Board{
		BaseModel: domain.BaseModel{ID: boardID},
		OwnerID:   userID,
		Title:     "Sprint 12",
		IsPrivate: true,
		Members: []domain.BoardMember{
			{ID: uuid.New(), BoardID: boardID, UserID: userID, Role: domain.MemberRoleOwner},
		},
	}

	tests := []struct {
		name        string
		allowed     bool
		resolverErr error
		mockBoard   func(*MockBoardRepository)
		wantErr     bool
		wantErrCode string
	}{
		{
			name:    "success: returns board with lists and cards",
			allowed: true,
			mockBoard: func(m *MockBoardRepository) {
				m.FindByIDWithMembersFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
					return board, nil
				}
			},
			wantErr: false,
		},
		{
			name:        "failure: access denied",
			allowed:     false,
			mockBoard:   func(m *MockBoardRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeForbidden,
		},
		{
			name:        "failure: resolver error",
			allowed:     false,
			resolverErr: errors.New("database error"),
			mockBoard:   func(m *MockBoardRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeInternal,
		},
		{
			name:    "failure: board vanished after access check",
			allowed: true,
			mockBoard: func(m *MockBoardRepository) {
				m.FindByIDWithMembersFunc = func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockBoardRepo := &MockBoardRepository{}
			tt.mockBoard(mockBoardRepo)
			mockListRepo := &MockListRepository{
				FindByBoardFunc: func(ctx context.Context, bID uuid.UUID, includeArchived bool) ([]*domain.List, error) {
					if includeArchived {
						t.Error("GetBoard() asked for archived lists")
					}
					return []*domain.List{
						{BaseModel: domain.BaseModel{ID: activeListID}, BoardID: boardID, Title: "To Do", Position: 1000},
					}, nil
				},
			}
			mockCardRepo := &MockCardRepository{
				FindByBoardFunc: func(ctx context.Context, bID uuid.UUID) ([]*domain.Card, error) {
					return []*domain.Card{
						{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: activeListID, BoardID: boardID, Title: "Visible", Position: 1000},
						{BaseModel: domain.BaseModel{ID: uuid.New()}, ListID: archivedListID, BoardID: boardID, Title: "Hidden", Position: 1000},
					}, nil
				},
			}
			resolver := &MockAccessResolver{
				CanAccessFunc: func(ctx context.Context, uID, bID uuid.UUID) (bool, error) {
					return tt.allowed, tt.resolverErr
				},
			}
			service := newBoardService(mockBoardRepo, mockListRepo, mockCardRepo, resolver, &MockNotifier{}, &MockActivityService{})
			ctx := context.WithValue(context.Background(), "user_id", userID)

			// When
			got, err := service.GetBoard(ctx, boardID)

			// Then
			if tt.wantErr {
				if err == nil {
					t.Error("GetBoard() error = nil, want error")
					return
				}
				if appErr, ok := err.(*response.AppError); ok {
					if appErr.Code != tt.wantErrCode {
						t.Errorf("GetBoard() error code = %v, want %v", appErr.Code, tt.wantErrCode)
					}
				}
				return
			}

			if err != nil {
				t.Errorf("GetBoard() unexpected error = %v", err)
				return
			}
			if got.BoardID != boardID {
				t.Errorf("GetBoard() BoardID = %v, want %v", got.BoardID, boardID)
			}
			if len(got.Lists) != 1 {
				t.Errorf("GetBoard() lists = %d, want 1", len(got.Lists))
			}
			// Cards on archived lists are not part of the full fetch
			if len(got.Cards) != 1 || got.Cards[0].Title != "Visible" {
				t.Errorf("GetBoard() cards = %+v, want only the visible card", got.Cards)
			}
			if len(got.Members) != 1 {
				t.Errorf("GetBoard() members = %d, want 1", len(got.Members))
			}
		})
	}
}

func TestBoardService_UpdateBoard(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	newTitle := "Renamed"

	mockBoardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{
				BaseModel: domain.BaseModel{ID: boardID},
				OwnerID:   userID,
				Title:     "Sprint 12",
				IsPrivate: true,
			}, nil
		},
		FindMembersFunc: func(ctx context.Context, bID uuid.UUID) ([]*domain.BoardMember, error) {
			return []*domain.BoardMember{
				{ID: uuid.New(), BoardID: boardID, UserID: userID, Role: domain.MemberRoleOwner},
			}, nil
		},
	}
	notifier := &MockNotifier{}
	activity := &MockActivityService{}
	service := newBoardService(mockBoardRepo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, activity)
	ctx := context.WithValue(context.Background(), "user_id", userID)

	got, err := service.UpdateBoard(ctx, boardID, &dto.UpdateBoardRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateBoard() unexpected error = %v", err)
	}
	if got.Title != newTitle {
		t.Errorf("UpdateBoard() Title = %v, want %v", got.Title, newTitle)
	}
	if got.IsPrivate != true {
		t.Error("UpdateBoard() IsPrivate changed without being requested")
	}

	call := notifier.find(realtime.EventBoardUpdated)
	if call == nil {
		t.Fatal("UpdateBoard() did not broadcast boardUpdated")
	}
	if call.boardID != boardID {
		t.Errorf("UpdateBoard() broadcast board = %v, want %v", call.boardID, boardID)
	}
	payload, ok := call.payload.(*dto.BoardResponse)
	if !ok || payload.Title != newTitle {
		t.Errorf("UpdateBoard() broadcast payload = %+v, want updated board", call.payload)
	}
	if types := activity.types(); len(types) != 1 || types[0] != domain.ActivityBoardUpdated {
		t.Errorf("UpdateBoard() recorded %v, want [BOARD_UPDATED]", types)
	}
}

func TestBoardService_UpdateBoard_AccessDenied(t *testing.T) {
	userID := uuid.New()
	title := "Renamed"
	resolver := &MockAccessResolver{
		CanAccessFunc: func(ctx context.Context, uID, bID uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	notifier := &MockNotifier{}
	service := newBoardService(&MockBoardRepository{}, &MockListRepository{}, &MockCardRepository{}, resolver, notifier, &MockActivityService{})
	ctx := context.WithValue(context.Background(), "user_id", userID)

	_, err := service.UpdateBoard(ctx, uuid.New(), &dto.UpdateBoardRequest{Title: &title})
	if err == nil {
		t.Fatal("UpdateBoard() error = nil, want forbidden")
	}
	appErr, ok := err.(*response.AppError)
	if !ok || appErr.Code != response.ErrCodeForbidden {
		t.Errorf("UpdateBoard() error = %v, want %v", err, response.ErrCodeForbidden)
	}
	if n := notifier.events(); len(n) != 0 {
		t.Errorf("UpdateBoard() broadcast %v after denial, want none", n)
	}
}

func TestBoardService_DeleteBoard(t *testing.T) {
	ownerID := uuid.New()
	memberID := uuid.New()
	boardID := uuid.New()

	newRepo := func() *MockBoardRepository {
		return &MockBoardRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
				return &domain.Board{
					BaseModel: domain.BaseModel{ID: boardID},
					OwnerID:   ownerID,
					Title:     "Sprint 12",
				}, nil
			},
		}
	}

	t.Run("owner deletes and room is told", func(t *testing.T) {
		deleted := false
		repo := newRepo()
		repo.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		}
		notifier := &MockNotifier{}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, &MockActivityService{})
		ctx := context.WithValue(context.Background(), "user_id", ownerID)

		if err := service.DeleteBoard(ctx, boardID); err != nil {
			t.Fatalf("DeleteBoard() unexpected error = %v", err)
		}
		if !deleted {
			t.Error("DeleteBoard() did not hit the repository")
		}
		if call := notifier.find(realtime.EventBoardDeleted); call == nil || call.boardID != boardID {
			t.Errorf("DeleteBoard() broadcast = %+v, want boardDeleted for %v", call, boardID)
		}
	})

	t.Run("non-owner member is rejected", func(t *testing.T) {
		repo := newRepo()
		repo.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
			t.Error("DeleteBoard() deleted despite non-owner caller")
			return nil
		}
		notifier := &MockNotifier{}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, &MockActivityService{})
		ctx := context.WithValue(context.Background(), "user_id", memberID)

		err := service.DeleteBoard(ctx, boardID)
		if err == nil {
			t.Fatal("DeleteBoard() error = nil, want forbidden")
		}
		appErr, ok := err.(*response.AppError)
		if !ok || appErr.Code != response.ErrCodeForbidden {
			t.Errorf("DeleteBoard() error = %v, want %v", err, response.ErrCodeForbidden)
		}
		if n := notifier.events(); len(n) != 0 {
			t.Errorf("DeleteBoard() broadcast %v after rejection, want none", n)
		}
	})
}

func TestBoardService_AddMember(t *testing.T) {
	callerID := uuid.New()
	newUserID := uuid.New()
	boardID := uuid.New()

	t.Run("new member is added and announced", func(t *testing.T) {
		repo := &MockBoardRepository{
			FindMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (*domain.BoardMember, error) {
				return nil, gorm.ErrRecordNotFound
			},
			AddMemberFunc: func(ctx context.Context, member *domain.BoardMember) error {
				member.ID = uuid.New()
				return nil
			},
		}
		notifier := &MockNotifier{}
		activity := &MockActivityService{}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, activity)
		ctx := context.WithValue(context.Background(), "user_id", callerID)

		got, err := service.AddMember(ctx, &dto.AddMemberRequest{BoardID: boardID, UserID: newUserID})
		if err != nil {
			t.Fatalf("AddMember() unexpected error = %v", err)
		}
		if got.UserID != newUserID || got.Role != string(domain.MemberRoleMember) {
			t.Errorf("AddMember() = %+v, want MEMBER role for %v", got, newUserID)
		}
		call := notifier.find(realtime.EventMemberAdded)
		if call == nil || call.boardID != boardID {
			t.Fatalf("AddMember() broadcast = %+v, want memberAdded for %v", call, boardID)
		}
		if types := activity.types(); len(types) != 1 || types[0] != domain.ActivityMemberAdded {
			t.Errorf("AddMember() recorded %v, want [MEMBER_ADDED]", types)
		}
	})

	t.Run("adding an existing member is a no-op", func(t *testing.T) {
		existing := &domain.BoardMember{
			ID:       uuid.New(),
			BoardID:  boardID,
			UserID:   newUserID,
			Role:     domain.MemberRoleMember,
			JoinedAt: time.Now().Add(-time.Hour),
		}
		repo := &MockBoardRepository{
			FindMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (*domain.BoardMember, error) {
				return existing, nil
			},
			AddMemberFunc: func(ctx context.Context, member *domain.BoardMember) error {
				t.Error("AddMember() inserted a duplicate membership row")
				return nil
			},
		}
		notifier := &MockNotifier{}
		activity := &MockActivityService{}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, activity)
		ctx := context.WithValue(context.Background(), "user_id", callerID)

		got, err := service.AddMember(ctx, &dto.AddMemberRequest{BoardID: boardID, UserID: newUserID})
		if err != nil {
			t.Fatalf("AddMember() unexpected error = %v", err)
		}
		if got.ID != existing.ID {
			t.Errorf("AddMember() = %+v, want the existing membership back", got)
		}
		if n := notifier.events(); len(n) != 0 {
			t.Errorf("AddMember() broadcast %v for a no-op, want none", n)
		}
		if types := activity.types(); len(types) != 0 {
			t.Errorf("AddMember() recorded %v for a no-op, want none", types)
		}
	})

	t.Run("custom role is honored", func(t *testing.T) {
		repo := &MockBoardRepository{
			FindMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (*domain.BoardMember, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, &MockNotifier{}, &MockActivityService{})
		ctx := context.WithValue(context.Background(), "user_id", callerID)

		got, err := service.AddMember(ctx, &dto.AddMemberRequest{BoardID: boardID, UserID: newUserID, Role: "ADMIN"})
		if err != nil {
			t.Fatalf("AddMember() unexpected error = %v", err)
		}
		if got.Role != string(domain.MemberRoleAdmin) {
			t.Errorf("AddMember() Role = %v, want ADMIN", got.Role)
		}
	})
}

func TestBoardService_RemoveMember(t *testing.T) {
	callerID := uuid.New()
	memberID := uuid.New()
	boardID := uuid.New()

	t.Run("member removal is announced", func(t *testing.T) {
		repo := &MockBoardRepository{
			FindMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (*domain.BoardMember, error) {
				return &domain.BoardMember{ID: uuid.New(), BoardID: boardID, UserID: memberID, Role: domain.MemberRoleMember}, nil
			},
			RemoveMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (int64, error) {
				return 1, nil
			},
		}
		notifier := &MockNotifier{}
		activity := &MockActivityService{}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, activity)
		ctx := context.WithValue(context.Background(), "user_id", callerID)

		got, err := service.RemoveMember(ctx, boardID, memberID)
		if err != nil {
			t.Fatalf("RemoveMember() unexpected error = %v", err)
		}
		if got.UserID != memberID || got.BoardID != boardID {
			t.Errorf("RemoveMember() = %+v, want removal of %v", got, memberID)
		}
		call := notifier.find(realtime.EventMemberRemoved)
		if call == nil {
			t.Fatal("RemoveMember() did not broadcast memberRemoved")
		}
		payload, ok := call.payload.(*dto.MemberRemovedResponse)
		if !ok || payload.UserID != memberID {
			t.Errorf("RemoveMember() broadcast payload = %+v, want %v", call.payload, memberID)
		}
		if types := activity.types(); len(types) != 1 || types[0] != domain.ActivityMemberRemoved {
			t.Errorf("RemoveMember() recorded %v, want [MEMBER_REMOVED]", types)
		}
	})

	t.Run("removing a non-member is a silent no-op", func(t *testing.T) {
		repo := &MockBoardRepository{
			FindMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (*domain.BoardMember, error) {
				return nil, gorm.ErrRecordNotFound
			},
			RemoveMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (int64, error) {
				t.Error("RemoveMember() deleted despite missing membership")
				return 0, nil
			},
		}
		notifier := &MockNotifier{}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, &MockActivityService{})
		ctx := context.WithValue(context.Background(), "user_id", callerID)

		got, err := service.RemoveMember(ctx, boardID, memberID)
		if err != nil {
			t.Fatalf("RemoveMember() unexpected error = %v", err)
		}
		if got.UserID != memberID {
			t.Errorf("RemoveMember() = %+v, want no-op response for %v", got, memberID)
		}
		if n := notifier.events(); len(n) != 0 {
			t.Errorf("RemoveMember() broadcast %v for a no-op, want none", n)
		}
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		repo := &MockBoardRepository{
			FindMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (*domain.BoardMember, error) {
				return &domain.BoardMember{ID: uuid.New(), BoardID: boardID, UserID: memberID, Role: domain.MemberRoleOwner}, nil
			},
		}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, &MockNotifier{}, &MockActivityService{})
		ctx := context.WithValue(context.Background(), "user_id", callerID)

		_, err := service.RemoveMember(ctx, boardID, memberID)
		if err == nil {
			t.Fatal("RemoveMember() error = nil, want validation error")
		}
		appErr, ok := err.(*response.AppError)
		if !ok || appErr.Code != response.ErrCodeValidation {
			t.Errorf("RemoveMember() error = %v, want %v", err, response.ErrCodeValidation)
		}
	})

	t.Run("race: row already gone broadcasts nothing", func(t *testing.T) {
		repo := &MockBoardRepository{
			FindMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (*domain.BoardMember, error) {
				return &domain.BoardMember{ID: uuid.New(), BoardID: boardID, UserID: memberID, Role: domain.MemberRoleMember}, nil
			},
			RemoveMemberFunc: func(ctx context.Context, bID, uID uuid.UUID) (int64, error) {
				return 0, nil
			},
		}
		notifier := &MockNotifier{}
		service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, notifier, &MockActivityService{})
		ctx := context.WithValue(context.Background(), "user_id", callerID)

		if _, err := service.RemoveMember(ctx, boardID, memberID); err != nil {
			t.Fatalf("RemoveMember() unexpected error = %v", err)
		}
		if n := notifier.events(); len(n) != 0 {
			t.Errorf("RemoveMember() broadcast %v when nothing was removed", n)
		}
	})
}

func TestBoardService_GetBoards(t *testing.T) {
	userID := uuid.New()
	repo := &MockBoardRepository{
		FindByUserFunc: func(ctx context.Context, uID uuid.UUID) ([]*domain.Board, error) {
			if uID != userID {
				t.Errorf("FindByUser called with %v, want %v", uID, userID)
			}
			return []*domain.Board{
				{BaseModel: domain.BaseModel{ID: uuid.New()}, OwnerID: userID, Title: "Mine"},
				{BaseModel: domain.BaseModel{ID: uuid.New()}, OwnerID: uuid.New(), Title: "Shared"},
			}, nil
		},
	}
	service := newBoardService(repo, &MockListRepository{}, &MockCardRepository{}, &MockAccessResolver{}, &MockNotifier{}, &MockActivityService{})
	ctx := context.WithValue(context.Background(), "user_id", userID)

	got, err := service.GetBoards(ctx)
	if err != nil {
		t.Fatalf("GetBoards() unexpected error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("GetBoards() = %d boards, want 2", len(got))
	}
}
