package domain

import (
	"encoding/json"
	"testing"
)

func TestQuestionUnmarshalPolymorphicAnswer(t *testing.T) {
	raw := `[
		{"id":1,"question":"Pick b","type":"single","options":["a","b"],"answer":1},
		{"id":2,"question":"Yes?","type":"boolean","answer":true}
	]`
	var questions []Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if questions[0].Kind != KindSingle || questions[0].AnswerIndex != 1 {
		t.Fatalf("unexpected single question: %+v", questions[0])
	}
	if questions[1].Kind != KindBoolean || !questions[1].AnswerBool {
		t.Fatalf("unexpected boolean question: %+v", questions[1])
	}
}

func TestQuestionUnmarshalRejectsBadAnswers(t *testing.T) {
	cases := map[string]string{
		"index out of range": `{"id":1,"question":"q","type":"single","options":["a"],"answer":3}`,
		"kind mismatch":      `{"id":2,"question":"q","type":"boolean","answer":2}`,
		"unknown kind":       `{"id":3,"question":"q","type":"essay","answer":0}`,
	}
	for name, raw := range cases {
		var q Question
		if err := json.Unmarshal([]byte(raw), &q); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestQuestionMarshalRoundTrip(t *testing.T) {
	q := Question{ID: 7, Prompt: "Yes?", Kind: KindBoolean, AnswerBool: true}
	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Question
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != 7 || back.Kind != KindBoolean || !back.AnswerBool {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

func TestAnswerValueMatchesRequiresKind(t *testing.T) {
	single := Question{ID: 1, Kind: KindSingle, Options: []string{"a", "b"}, AnswerIndex: 1}
	boolean := Question{ID: 2, Kind: KindBoolean, AnswerBool: true}

	if !OptionAnswer(1).Matches(single) {
		t.Fatalf("expected option 1 to match")
	}
	if OptionAnswer(0).Matches(single) {
		t.Fatalf("expected option 0 not to match")
	}
	if !BoolAnswer(true).Matches(boolean) {
		t.Fatalf("expected true to match")
	}
	// A boolean recorded against a single-choice question never counts,
	// even if the raw values would coincide.
	if BoolAnswer(true).Matches(single) {
		t.Fatalf("kind mismatch must not match")
	}
	if OptionAnswer(1).Matches(boolean) {
		t.Fatalf("kind mismatch must not match")
	}
}
