package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-import/internal/cache"
	"quiz-import/internal/domain"
	"quiz-import/internal/util"
)

// DraftStore keeps parsed previews so a later import can commit exactly
// what the user reviewed.
type DraftStore interface {
	Save(ctx context.Context, questions []domain.Question) (string, error)
	Load(ctx context.Context, draftID string) ([]domain.Question, error)
	Delete(ctx context.Context, draftID string) error
}

type draftStoreImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewDraftStore stores drafts in cache, expiring them after ttl.
func NewDraftStore(cache domain.Cache, ttl time.Duration) DraftStore {
	return &draftStoreImpl{cache: cache, ttl: ttl}
}

func (s *draftStoreImpl) Save(ctx context.Context, questions []domain.Question) (string, error) {
	payload, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("failed to encode draft: %w", err)
	}
	draftID := util.NewULID()
	if err := s.cache.Set(ctx, cache.DraftKey(draftID), string(payload), s.ttl); err != nil {
		return "", fmt.Errorf("failed to store draft: %w", err)
	}
	return draftID, nil
}

// Load returns a DRAFT_NOT_FOUND domain error for unknown or expired drafts.
func (s *draftStoreImpl) Load(ctx context.Context, draftID string) ([]domain.Question, error) {
	payload, err := s.cache.Get(ctx, cache.DraftKey(draftID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewDraftNotFoundError(draftID)
		}
		return nil, fmt.Errorf("failed to load draft %s: %w", draftID, err)
	}

	var questions []domain.Question
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", draftID, err)
	}
	return questions, nil
}

func (s *draftStoreImpl) Delete(ctx context.Context, draftID string) error {
	return s.cache.Delete(ctx, cache.DraftKey(draftID))
}
