package memory

import (
	"context"
	"sync"
	"time"

	"quiz-attempt-service/internal/app"
	"quiz-attempt-service/internal/domain"
)

// ScoreStore is an in-memory implementation of app.ScoreStore, used in
// tests and for running without Postgres. Records live for the process
// lifetime only.
type ScoreStore struct {
	now func() time.Time

	mu      sync.Mutex
	nextID  int64
	records []domain.ScoreRecord
}

func NewScoreStore() *ScoreStore {
	return NewScoreStoreWithClock(time.Now)
}

// NewScoreStoreWithClock allows deterministic creation timestamps in tests.
func NewScoreStoreWithClock(now func() time.Time) *ScoreStore {
	return &ScoreStore{now: now}
}

func (s *ScoreStore) Append(_ context.Context, name string, score, total int, durationMs int64) (domain.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	record := domain.ScoreRecord{
		ID:         s.nextID,
		Name:       name,
		Score:      score,
		Total:      total,
		DurationMs: durationMs,
		CreatedAt:  s.now(),
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *ScoreStore) TopN(_ context.Context, n int) ([]domain.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ordered := app.Order(s.records)
	if n >= 0 && len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered, nil
}

// UnconfiguredScoreStore stands in when no backing store is set up: appends
// fail with a configuration error while fetches degrade to an empty
// leaderboard, so the participant still sees their own result.
type UnconfiguredScoreStore struct{}

func NewUnconfiguredScoreStore() UnconfiguredScoreStore {
	return UnconfiguredScoreStore{}
}

func (UnconfiguredScoreStore) Append(context.Context, string, int, int, int64) (domain.ScoreRecord, error) {
	return domain.ScoreRecord{}, domain.ErrStoreNotConfigured
}

func (UnconfiguredScoreStore) TopN(context.Context, int) ([]domain.ScoreRecord, error) {
	return []domain.ScoreRecord{}, nil
}
