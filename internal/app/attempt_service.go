package app

import (
	"context"
	"fmt"

	"quiz-attempt-service/internal/domain"
)

// DefaultLeaderboardSize bounds the fetched top slice when no size is configured.
const DefaultLeaderboardSize = 10

// SessionStore abstracts how attempts are tracked (in-memory, Redis-marked, etc).
type SessionStore interface {
	Create(questions []domain.Question) *Session
	Get(id string) (*Session, bool)
	Delete(id string)
}

// QuestionRepository loads the fixed question set (from cache/backing store).
type QuestionRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// ScoreStore persists completed attempts and serves the ordered top slice.
// TopN must return records in leaderboard order (see Less) and, when no
// backing store is configured, an empty slice rather than an error.
type ScoreStore interface {
	Append(ctx context.Context, name string, score, total int, durationMs int64) (domain.ScoreRecord, error)
	TopN(ctx context.Context, n int) ([]domain.ScoreRecord, error)
}

// AttemptService contains the quiz attempt use cases.
type AttemptService struct {
	sessions  SessionStore
	questions QuestionRepository
	scores    ScoreStore
	topN      int
}

func NewAttemptService(sessions SessionStore, questions QuestionRepository, scores ScoreStore, topN int) *AttemptService {
	if topN <= 0 {
		topN = DefaultLeaderboardSize
	}
	return &AttemptService{sessions: sessions, questions: questions, scores: scores, topN: topN}
}

// NewSession loads the question set and registers a fresh attempt.
func (s *AttemptService) NewSession(ctx context.Context) (*Session, error) {
	questions, err := s.questions.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrQuestionsNotFound
	}
	return s.sessions.Create(questions), nil
}

// Session looks up a tracked attempt by ID.
func (s *AttemptService) Session(id string) (*Session, bool) {
	return s.sessions.Get(id)
}

// Release drops a tracked attempt once its connection is gone.
func (s *AttemptService) Release(id string) {
	s.sessions.Delete(id)
}

// Finish persists a completed attempt and fetches the fresh top slice.
// Both steps are best-effort: the session stays Completed and its Result
// stays available whatever the store does. A non-nil error reports the
// first failure for logging; the returned leaderboard is then the empty
// view, which renders as "leaderboard unavailable".
func (s *AttemptService) Finish(ctx context.Context, session *Session) (domain.Leaderboard, error) {
	result, ok := session.Result()
	if !ok {
		return domain.Leaderboard{}, domain.ErrNotCompleted
	}

	var firstErr error
	if _, err := s.scores.Append(ctx, result.Name, result.Score, result.Total, result.DurationMs); err != nil {
		firstErr = fmt.Errorf("append score: %w", err)
	}

	lb, err := s.Leaderboard(ctx)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	return lb, firstErr
}

// Leaderboard fetches the ordered top slice and partitions it for display.
func (s *AttemptService) Leaderboard(ctx context.Context) (domain.Leaderboard, error) {
	records, err := s.scores.TopN(ctx, s.topN)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("fetch leaderboard: %w", err)
	}
	return Partition(records), nil
}
