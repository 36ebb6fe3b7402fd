package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"quiz-attempt-service/internal/domain"
)

// State identifies where an attempt is in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

// Result is the locally computed summary of a completed attempt. It is
// derived from session state alone, so it stays available even when the
// score store rejects the record.
type Result struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	DurationMs int64  `json:"durationMs"`
}

// Session is one participant's attempt over a fixed question sequence.
// Mutations are user-driven and strictly sequential; the mutex only guards
// against the transport inspecting state from another goroutine.
type Session struct {
	id        string
	questions []domain.Question
	now       func() time.Time

	mu          sync.Mutex
	state       State
	index       int
	name        string
	answers     map[int]domain.AnswerValue
	startedAt   time.Time // when the current question became visible; zero outside a question
	accumulated time.Duration
}

// NewSession creates an attempt over the given questions in NotStarted state.
func NewSession(questions []domain.Question) *Session {
	return NewSessionWithClock(questions, time.Now)
}

// NewSessionWithClock is for deterministic timestamps in tests.
func NewSessionWithClock(questions []domain.Question, now func() time.Time) *Session {
	return &Session{
		id:        newAttemptID(),
		questions: questions,
		now:       now,
		answers:   make(map[int]domain.AnswerValue),
	}
}

func (s *Session) ID() string { return s.id }

// Total returns the number of questions in the attempt.
func (s *Session) Total() int { return len(s.questions) }

// Start begins the attempt for the named participant. The name must be
// non-empty after trimming and the attempt must not have started yet;
// invalid calls are rejected without changing state.
func (s *Session) Start(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateNotStarted {
		return domain.ErrAlreadyStarted
	}
	s.state = StateInProgress
	s.index = 0
	s.name = trimmed
	s.accumulated = 0
	s.startedAt = s.now()
	return nil
}

// Select records the participant's value for a question. Re-answering
// overwrites the previous value; it never advances the attempt.
func (s *Session) Select(questionID int, value domain.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return domain.ErrNotInProgress
	}
	known := false
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			known = true
			break
		}
	}
	if !known {
		return domain.ErrUnknownQuestion
	}
	s.answers[questionID] = value
	return nil
}

// Advance folds the time spent on the current question into the accumulated
// duration and moves to the next question, or completes the attempt after
// the last one. It refuses to move past an unanswered question.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return domain.ErrNotInProgress
	}
	current := s.questions[s.index]
	if _, ok := s.answers[current.ID]; !ok {
		return domain.ErrAnswerRequired
	}

	now := s.now()
	if !s.startedAt.IsZero() && now.After(s.startedAt) {
		s.accumulated += now.Sub(s.startedAt)
	}
	if s.index+1 < len(s.questions) {
		s.index++
		s.startedAt = s.now()
		return nil
	}
	s.state = StateCompleted
	s.startedAt = time.Time{}
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Name returns the trimmed participant name recorded by Start.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Current returns the question being shown, if the attempt is in progress,
// along with its 1-based position.
func (s *Session) Current() (domain.Question, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return domain.Question{}, 0, false
	}
	return s.questions[s.index], s.index + 1, true
}

// Score recomputes the live correct-answer count from the recorded answers.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeScore(s.questions, s.answers)
}

// Duration returns the accumulated active time so far.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accumulated
}

// Result summarizes a completed attempt; ok is false until then.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted {
		return Result{}, false
	}
	return Result{
		Name:       s.name,
		Score:      ComputeScore(s.questions, s.answers),
		Total:      len(s.questions),
		DurationMs: s.accumulated.Milliseconds(),
	}, true
}

// newAttemptID returns a random identifier for one attempt.
func newAttemptID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("attempt-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf[:])
}
