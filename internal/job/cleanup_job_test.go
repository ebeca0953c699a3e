package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
)

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByBoard(ctx context.Context, boardID uuid.UUID, page, limit int) ([]*domain.Activity, int64, error) {
	args := m.Called(ctx, boardID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Activity), args.Get(1).(int64), args.Error(2)
}

func (m *MockActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestCleanupJob_DeletesEntriesPastRetention(t *testing.T) {
	repo := new(MockActivityRepository)
	job := NewCleanupJob(repo, 90, zap.NewNop())

	var gotCutoff time.Time
	repo.On("DeleteOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			gotCutoff = args.Get(1).(time.Time)
		}).
		Return(int64(12), nil)

	job.Run()

	repo.AssertExpectations(t)
	expected := time.Now().AddDate(0, 0, -90)
	assert.WithinDuration(t, expected, gotCutoff, time.Minute)
}

func TestCleanupJob_RepositoryErrorDoesNotPanic(t *testing.T) {
	repo := new(MockActivityRepository)
	job := NewCleanupJob(repo, 30, zap.NewNop())

	repo.On("DeleteOlderThan", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), errors.New("database unavailable"))

	assert.NotPanics(t, func() { job.Run() })
	repo.AssertExpectations(t)
}

func TestCleanupJob_ZeroRetentionSkipsDeletion(t *testing.T) {
	repo := new(MockActivityRepository)
	job := NewCleanupJob(repo, 0, zap.NewNop())

	job.Run()

	repo.AssertNotCalled(t, "DeleteOlderThan", mock.Anything, mock.Anything)
}
