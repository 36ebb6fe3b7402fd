package app_test

import (
	"errors"
	"testing"
	"time"

	"quiz-attempt-service/internal/app"
	"quiz-attempt-service/internal/domain"
)

func testQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Prompt: "Pick b", Kind: domain.KindSingle, Options: []string{"a", "b"}, AnswerIndex: 1},
		{ID: 2, Prompt: "Yes?", Kind: domain.KindBoolean, AnswerBool: true},
	}
}

func TestStartRequiresName(t *testing.T) {
	session := app.NewSession(testQuestions())

	if err := session.Start("   "); !errors.Is(err, domain.ErrEmptyName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if session.State() != app.StateNotStarted {
		t.Fatalf("rejected start must not change state")
	}

	if err := session.Start("  Alice  "); err != nil {
		t.Fatalf("start: %v", err)
	}
	if session.Name() != "Alice" {
		t.Fatalf("expected trimmed name, got %q", session.Name())
	}
	if _, number, ok := session.Current(); !ok || number != 1 {
		t.Fatalf("expected first question, got number=%d ok=%v", number, ok)
	}

	if err := session.Start("Bob"); !errors.Is(err, domain.ErrAlreadyStarted) {
		t.Fatalf("expected already started, got %v", err)
	}
}

func TestSelectOnlyInProgress(t *testing.T) {
	session := app.NewSession(testQuestions())

	if err := session.Select(1, domain.OptionAnswer(1)); !errors.Is(err, domain.ErrNotInProgress) {
		t.Fatalf("expected not in progress, got %v", err)
	}

	if err := session.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := session.Select(99, domain.OptionAnswer(0)); !errors.Is(err, domain.ErrUnknownQuestion) {
		t.Fatalf("expected unknown question, got %v", err)
	}
}

func TestSelectOverwrites(t *testing.T) {
	session := app.NewSession(testQuestions())
	if err := session.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := session.Select(1, domain.OptionAnswer(0)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := session.Score(); got != 0 {
		t.Fatalf("expected live score 0, got %d", got)
	}
	// Re-answering keeps only the second value.
	if err := session.Select(1, domain.OptionAnswer(1)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := session.Score(); got != 1 {
		t.Fatalf("expected live score 1, got %d", got)
	}
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	session := app.NewSession(testQuestions())
	if err := session.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := session.Advance(); !errors.Is(err, domain.ErrAnswerRequired) {
		t.Fatalf("expected answer required, got %v", err)
	}
	if _, number, _ := session.Current(); number != 1 {
		t.Fatalf("rejected advance must not move, got number %d", number)
	}
}

func TestAdvanceAccumulatesDuration(t *testing.T) {
	current := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	session := app.NewSessionWithClock(testQuestions(), func() time.Time { return current })

	if err := session.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}

	current = current.Add(30 * time.Second)
	if err := session.Select(1, domain.OptionAnswer(1)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := session.Duration(); got != 30*time.Second {
		t.Fatalf("expected 30s accumulated, got %v", got)
	}

	current = current.Add(20 * time.Second)
	if err := session.Select(2, domain.BoolAnswer(true)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}

	result, ok := session.Result()
	if !ok {
		t.Fatalf("expected completed result")
	}
	if result.DurationMs != 50000 {
		t.Fatalf("expected 50000ms, got %d", result.DurationMs)
	}
	if result.Score != 2 || result.Total != 2 || result.Name != "Alice" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCompletedIsAbsorbing(t *testing.T) {
	session := app.NewSession(testQuestions())
	if err := session.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, q := range testQuestions() {
		var value domain.AnswerValue
		if q.Kind == domain.KindSingle {
			value = domain.OptionAnswer(q.AnswerIndex)
		} else {
			value = domain.BoolAnswer(q.AnswerBool)
		}
		if err := session.Select(q.ID, value); err != nil {
			t.Fatalf("select: %v", err)
		}
		if err := session.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if session.State() != app.StateCompleted {
		t.Fatalf("expected completed state")
	}

	if err := session.Advance(); !errors.Is(err, domain.ErrNotInProgress) {
		t.Fatalf("expected not in progress, got %v", err)
	}
	if err := session.Select(1, domain.OptionAnswer(0)); !errors.Is(err, domain.ErrNotInProgress) {
		t.Fatalf("expected not in progress, got %v", err)
	}
	if err := session.Start("Bob"); !errors.Is(err, domain.ErrAlreadyStarted) {
		t.Fatalf("expected already started, got %v", err)
	}
}

func TestClockGoingBackwardsNeverSubtracts(t *testing.T) {
	current := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	session := app.NewSessionWithClock(testQuestions(), func() time.Time { return current })

	if err := session.Start("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
	current = current.Add(-time.Minute)
	if err := session.Select(1, domain.OptionAnswer(1)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if got := session.Duration(); got != 0 {
		t.Fatalf("expected zero duration, got %v", got)
	}
}
