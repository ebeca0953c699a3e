package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
)

func newActivityService(repo *MockActivityRepository, resolver *MockAccessResolver, notifier *MockNotifier) ActivityService {
	logger, _ := zap.NewDevelopment()
	return NewActivityService(repo, resolver, notifier, logger)
}

func TestActivityService_Record(t *testing.T) {
	boardID := uuid.New()
	userID := uuid.New()

	t.Run("entry is stored and broadcast", func(t *testing.T) {
		// Given
		var stored *domain.Activity
		repo := &MockActivityRepository{
			CreateFunc: func(ctx context.Context, activity *domain.Activity) error {
				activity.ID = uuid.New()
				stored = activity
				return nil
			},
		}
		notifier := &MockNotifier{}
		service := newActivityService(repo, &MockAccessResolver{}, notifier)

		// When
		service.Record(context.Background(), boardID, userID, domain.ActivityCardMoved, map[string]interface{}{
			"cardId": "c-1",
		})

		// Then
		if stored == nil {
			t.Fatal("Record() stored nothing")
		}
		if stored.Type != domain.ActivityCardMoved || stored.BoardID != boardID || stored.UserID != userID {
			t.Errorf("Record() stored %+v, want CARD_MOVED by %v on %v", stored, userID, boardID)
		}
		var data map[string]string
		if err := json.Unmarshal(stored.Data, &data); err != nil || data["cardId"] != "c-1" {
			t.Errorf("Record() stored data %s, want cardId c-1", stored.Data)
		}
		call := notifier.find(realtime.EventActivityCreated)
		if call == nil || call.boardID != boardID {
			t.Fatalf("Record() broadcast = %+v, want activityCreated for %v", call, boardID)
		}
		payload, ok := call.payload.(*dto.ActivityResponse)
		if !ok || payload.Type != string(domain.ActivityCardMoved) {
			t.Errorf("Record() broadcast payload = %+v, want CARD_MOVED entry", call.payload)
		}
	})

	t.Run("storage failure is swallowed and nothing is broadcast", func(t *testing.T) {
		// Given
		repo := &MockActivityRepository{
			CreateFunc: func(ctx context.Context, activity *domain.Activity) error {
				return errors.New("connection refused")
			},
		}
		notifier := &MockNotifier{}
		service := newActivityService(repo, &MockAccessResolver{}, notifier)

		// When: must not panic or propagate
		service.Record(context.Background(), boardID, userID, domain.ActivityBoardUpdated, map[string]interface{}{"title": "x"})

		// Then
		if n := notifier.events(); len(n) != 0 {
			t.Errorf("Record() broadcast %v after a storage failure, want none", n)
		}
	})

	t.Run("nil data still records", func(t *testing.T) {
		var stored *domain.Activity
		repo := &MockActivityRepository{
			CreateFunc: func(ctx context.Context, activity *domain.Activity) error {
				activity.ID = uuid.New()
				stored = activity
				return nil
			},
		}
		notifier := &MockNotifier{}
		service := newActivityService(repo, &MockAccessResolver{}, notifier)

		service.Record(context.Background(), boardID, userID, domain.ActivityListDeleted, nil)

		if stored == nil || len(stored.Data) != 0 {
			t.Errorf("Record() stored %+v, want an entry with empty data", stored)
		}
		if call := notifier.find(realtime.EventActivityCreated); call == nil {
			t.Error("Record() did not broadcast the entry")
		}
	})
}

func TestActivityService_GetActivities(t *testing.T) {
	boardID := uuid.New()
	userID := uuid.New()

	entries := []*domain.Activity{
		{ID: uuid.New(), BoardID: boardID, UserID: userID, Type: domain.ActivityCardMoved},
		{ID: uuid.New(), BoardID: boardID, UserID: userID, Type: domain.ActivityListCreated},
	}

	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults applied", page: 0, limit: 0, wantPage: 1, wantLimit: 50},
		{name: "explicit paging passed through", page: 3, limit: 20, wantPage: 3, wantLimit: 20},
		{name: "oversized limit capped to default", page: 1, limit: 500, wantPage: 1, wantLimit: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			repo := &MockActivityRepository{
				FindByBoardFunc: func(ctx context.Context, bID uuid.UUID, page, limit int) ([]*domain.Activity, int64, error) {
					if page != tt.wantPage || limit != tt.wantLimit {
						t.Errorf("FindByBoard(page=%d, limit=%d), want (%d, %d)", page, limit, tt.wantPage, tt.wantLimit)
					}
					return entries, 42, nil
				},
			}
			service := newActivityService(repo, &MockAccessResolver{}, &MockNotifier{})
			ctx := context.WithValue(context.Background(), "user_id", userID)

			// When
			got, err := service.GetActivities(ctx, boardID, tt.page, tt.limit)

			// Then
			if err != nil {
				t.Fatalf("GetActivities() unexpected error = %v", err)
			}
			if len(got.Activities) != 2 || got.Total != 42 {
				t.Errorf("GetActivities() = %d entries total %d, want 2 entries total 42", len(got.Activities), got.Total)
			}
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("GetActivities() page=%d limit=%d, want page=%d limit=%d", got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestActivityService_GetActivities_AccessDenied(t *testing.T) {
	resolver := &MockAccessResolver{
		CanAccessFunc: func(ctx context.Context, userID, boardID uuid.UUID) (bool, error) {
			return false, nil
		},
	}
	repo := &MockActivityRepository{
		FindByBoardFunc: func(ctx context.Context, boardID uuid.UUID, page, limit int) ([]*domain.Activity, int64, error) {
			t.Error("GetActivities() read the log without access")
			return nil, 0, nil
		},
	}
	service := newActivityService(repo, resolver, &MockNotifier{})
	ctx := context.WithValue(context.Background(), "user_id", uuid.New())

	_, err := service.GetActivities(ctx, uuid.New(), 1, 50)
	if err == nil {
		t.Fatal("GetActivities() error = nil, want forbidden")
	}
	appErr, ok := err.(*response.AppError)
	if !ok || appErr.Code != response.ErrCodeForbidden {
		t.Errorf("GetActivities() error = %v, want %v", err, response.ErrCodeForbidden)
	}
}

func TestActivityService_GetActivities_NoUser(t *testing.T) {
	service := newActivityService(&MockActivityRepository{}, &MockAccessResolver{}, &MockNotifier{})

	_, err := service.GetActivities(context.Background(), uuid.New(), 1, 50)
	if err == nil {
		t.Fatal("GetActivities() error = nil, want unauthorized")
	}
	appErr, ok := err.(*response.AppError)
	if !ok || appErr.Code != response.ErrCodeUnauthorized {
		t.Errorf("GetActivities() error = %v, want %v", err, response.ErrCodeUnauthorized)
	}
}
