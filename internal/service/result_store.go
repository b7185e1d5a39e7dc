package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mcq-gen/internal/cache"
	"mcq-gen/internal/domain"
	"mcq-gen/internal/logger"

	"go.uber.org/zap"
)

// resultStore implements domain.ResultStore on top of a generic cache.
type resultStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultStore keeps generated quizzes in c for ttl.
func NewResultStore(c domain.Cache, ttl time.Duration) domain.ResultStore {
	return &resultStore{cache: c, ttl: ttl}
}

func (s *resultStore) generateKey(id string) string {
	return cache.QuizResultKey(id)
}

// Put stores the result under its ID.
func (s *resultStore) Put(ctx context.Context, result *domain.QuizResult) error {
	if result == nil || result.ID == "" {
		return domain.NewInvalidInputError("cannot store a result without an id")
	}

	key := s.generateKey(result.ID)
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal quiz result", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to store quiz result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to store quiz result for key %s", key), err)
	}
	logger.Get().Debug("Stored quiz result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Get loads a stored result. Unknown or expired IDs yield NOT_FOUND.
func (s *resultStore) Get(ctx context.Context, id string) (*domain.QuizResult, error) {
	key := s.generateKey(id)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Quiz result cache miss", zap.String("key", key))
			return nil, domain.NewResultNotFoundError(id)
		}
		logger.Get().Error("Failed to load quiz result", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load quiz result for key %s", key), err)
	}
	if data == "" {
		return nil, domain.NewResultNotFoundError(id)
	}

	var result domain.QuizResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal quiz result for key %s", key), err)
	}
	return &result, nil
}
