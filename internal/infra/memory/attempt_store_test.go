package memory

import (
	"testing"

	"quiz-attempt-service/internal/domain"
)

func TestAttemptStoreLifecycle(t *testing.T) {
	store := NewAttemptStore()

	session := store.Create(sampleQuestions())
	if session == nil || session.ID() == "" {
		t.Fatalf("expected session with id")
	}
	if _, ok := store.Get(session.ID()); !ok {
		t.Fatalf("expected session present")
	}

	other := store.Create(sampleQuestions())
	if other.ID() == session.ID() {
		t.Fatalf("expected distinct attempt ids")
	}

	store.Delete(session.ID())
	if _, ok := store.Get(session.ID()); ok {
		t.Fatalf("expected session removed")
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Prompt: "Pick b", Kind: domain.KindSingle, Options: []string{"a", "b"}, AnswerIndex: 1},
		{ID: 2, Prompt: "Yes?", Kind: domain.KindBoolean, AnswerBool: true},
	}
}
