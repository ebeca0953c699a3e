package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/domain"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/dto"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/repository"
	"github.com/MDaniyal2080/TaskZen-sub000/internal/response"
)

// CacheRecorder records cache lookup outcomes for settings reads
type CacheRecorder interface {
	RecordCacheLookup(key string, hit bool)
}

// Service exposes the global feature flags.
// Flags default to enabled when no row exists, so a fresh install behaves
// like a fully-featured one until an admin turns something off.
type Service interface {
	// RealtimeEnabled reports whether realtime sync is globally enabled
	RealtimeEnabled(ctx context.Context) bool
	// PublicBoardsEnabled reports whether public boards are globally readable
	PublicBoardsEnabled(ctx context.Context) bool
	// Get returns the effective value of a known setting key
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	// Update persists a setting value and invalidates its cache entry
	Update(ctx context.Context, key string, enabled bool) (*dto.SettingResponse, error)
}

type serviceImpl struct {
	repo     repository.SettingRepository
	redis    *redis.Client
	cacheTTL time.Duration
	recorder CacheRecorder
	logger   *zap.Logger
}

// NewService creates a new settings Service. The redis client and recorder
// may be nil; reads then go straight to the database.
func NewService(
	repo repository.SettingRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	recorder CacheRecorder,
	logger *zap.Logger,
) Service {
	return &serviceImpl{
		repo:     repo,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		recorder: recorder,
		logger:   logger,
	}
}

func knownKey(key string) bool {
	return key == domain.SettingRealtimeEnabled || key == domain.SettingPublicBoardsEnabled
}

func cacheKey(key string) string {
	return fmt.Sprintf("taskzen:setting:%s", key)
}

// RealtimeEnabled reports whether realtime sync is globally enabled
func (s *serviceImpl) RealtimeEnabled(ctx context.Context) bool {
	return s.enabled(ctx, domain.SettingRealtimeEnabled)
}

// PublicBoardsEnabled reports whether public boards are globally readable
func (s *serviceImpl) PublicBoardsEnabled(ctx context.Context) bool {
	return s.enabled(ctx, domain.SettingPublicBoardsEnabled)
}

// enabled resolves a flag with cache-aside semantics. Lookup failures fall
// back to the enabled default rather than flipping features off.
func (s *serviceImpl) enabled(ctx context.Context, key string) bool {
	// Try cache first
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey(key)).Result()
		if err == nil {
			s.recordLookup(key, true)
			value, parseErr := strconv.ParseBool(cached)
			if parseErr == nil {
				return value
			}
		}
		s.recordLookup(key, false)
	}

	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Failed to read setting, using default",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return true
	}

	value, err := strconv.ParseBool(setting.Value)
	if err != nil {
		s.logger.Warn("Setting has non-boolean value, using default",
			zap.String("key", key),
			zap.String("value", setting.Value),
		)
		return true
	}

	s.cacheValue(ctx, key, value)
	return value
}

// Get returns the effective value of a known setting key
func (s *serviceImpl) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	if !knownKey(key) {
		return nil, response.NewNotFoundError("Setting not found", key)
	}

	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No row yet means the default applies
			return &dto.SettingResponse{Key: key, Enabled: true}, nil
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to read setting", err.Error())
	}

	enabled, err := strconv.ParseBool(setting.Value)
	if err != nil {
		enabled = true
	}

	return &dto.SettingResponse{
		Key:       setting.Key,
		Enabled:   enabled,
		UpdatedAt: setting.UpdatedAt,
	}, nil
}

// Update persists a setting value and invalidates its cache entry
func (s *serviceImpl) Update(ctx context.Context, key string, enabled bool) (*dto.SettingResponse, error) {
	if !knownKey(key) {
		return nil, response.NewNotFoundError("Setting not found", key)
	}

	setting, err := s.repo.Upsert(ctx, key, strconv.FormatBool(enabled))
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update setting", err.Error())
	}

	s.invalidate(ctx, key)

	return &dto.SettingResponse{
		Key:       setting.Key,
		Enabled:   enabled,
		UpdatedAt: setting.UpdatedAt,
	}, nil
}

func (s *serviceImpl) cacheValue(ctx context.Context, key string, value bool) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(key), strconv.FormatBool(value), s.cacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to cache setting", zap.String("key", key), zap.Error(err))
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, key string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, cacheKey(key)).Err(); err != nil {
		s.logger.Warn("Failed to invalidate setting cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *serviceImpl) recordLookup(key string, hit bool) {
	if s.recorder != nil {
		s.recorder.RecordCacheLookup(key, hit)
	}
}
