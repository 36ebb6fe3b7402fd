package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// QuestionKind distinguishes how a question is answered and scored.
type QuestionKind string

const (
	// KindSingle is a single choice from an ordered list of options.
	KindSingle QuestionKind = "single"
	// KindBoolean is a yes/no question.
	KindBoolean QuestionKind = "boolean"
)

// Question is one quiz question. The correct answer is either an option
// index (single) or a boolean, matching Kind; the set is loaded once at
// startup and never mutated.
type Question struct {
	ID          int          `json:"id"`
	Prompt      string       `json:"question"`
	Kind        QuestionKind `json:"type"`
	Options     []string     `json:"options,omitempty"`
	AnswerIndex int          `json:"-"`
	AnswerBool  bool         `json:"-"`
}

// questionJSON is the wire form; the answer field is a number or a boolean
// depending on the question kind.
type questionJSON struct {
	ID      int             `json:"id"`
	Prompt  string          `json:"question"`
	Kind    QuestionKind    `json:"type"`
	Options []string        `json:"options,omitempty"`
	Answer  json.RawMessage `json:"answer"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.ID = raw.ID
	q.Prompt = raw.Prompt
	q.Kind = raw.Kind
	q.Options = raw.Options

	switch raw.Kind {
	case KindSingle:
		if err := json.Unmarshal(raw.Answer, &q.AnswerIndex); err != nil {
			return fmt.Errorf("question %d: single-choice answer: %w", raw.ID, err)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return fmt.Errorf("question %d: answer index %d out of range", raw.ID, q.AnswerIndex)
		}
	case KindBoolean:
		if err := json.Unmarshal(raw.Answer, &q.AnswerBool); err != nil {
			return fmt.Errorf("question %d: boolean answer: %w", raw.ID, err)
		}
	default:
		return fmt.Errorf("question %d: unknown kind %q", raw.ID, raw.Kind)
	}
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	raw := questionJSON{ID: q.ID, Prompt: q.Prompt, Kind: q.Kind, Options: q.Options}
	var err error
	switch q.Kind {
	case KindBoolean:
		raw.Answer, err = json.Marshal(q.AnswerBool)
	default:
		raw.Answer, err = json.Marshal(q.AnswerIndex)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// AnswerValue is a participant's selection for one question: an option
// index for single-choice questions or a boolean for yes/no questions.
type AnswerValue struct {
	Kind        QuestionKind `json:"kind"`
	OptionIndex int          `json:"optionIndex,omitempty"`
	Bool        bool         `json:"bool,omitempty"`
}

// OptionAnswer selects the option at index of a single-choice question.
func OptionAnswer(index int) AnswerValue {
	return AnswerValue{Kind: KindSingle, OptionIndex: index}
}

// BoolAnswer selects yes or no for a boolean question.
func BoolAnswer(value bool) AnswerValue {
	return AnswerValue{Kind: KindBoolean, Bool: value}
}

// Matches reports whether the value is the correct answer for the question.
// The kinds must match before any comparison: a boolean recorded against a
// single-choice question never counts, however the raw values line up.
func (v AnswerValue) Matches(q Question) bool {
	if v.Kind != q.Kind {
		return false
	}
	switch q.Kind {
	case KindSingle:
		return v.OptionIndex == q.AnswerIndex
	case KindBoolean:
		return v.Bool == q.AnswerBool
	}
	return false
}

// ScoreRecord is one persisted attempt summary. ID and CreatedAt are
// assigned by the store; records are never mutated or deleted.
type ScoreRecord struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RankedRecord pairs a record with its explicit 1-based rank in the full
// leaderboard order.
type RankedRecord struct {
	Rank   int         `json:"rank"`
	Record ScoreRecord `json:"record"`
}

// Leaderboard is the display view over the ordered top records: a fixed
// three-slot podium (nil slots render as empty placeholders) and the
// ranked remainder, whose first entry always carries rank 4.
type Leaderboard struct {
	Podium [3]*ScoreRecord `json:"podium"`
	Rest   []RankedRecord  `json:"rest"`
}
