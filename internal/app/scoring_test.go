package app_test

import (
	"testing"

	"quiz-attempt-service/internal/app"
	"quiz-attempt-service/internal/domain"
)

func TestComputeScoreScenarios(t *testing.T) {
	questions := []domain.Question{
		{ID: 1, Kind: domain.KindSingle, Options: []string{"a", "b"}, AnswerIndex: 1},
		{ID: 2, Kind: domain.KindBoolean, AnswerBool: true},
	}

	cases := []struct {
		name    string
		answers map[int]domain.AnswerValue
		want    int
	}{
		{
			name: "all correct",
			answers: map[int]domain.AnswerValue{
				1: domain.OptionAnswer(1),
				2: domain.BoolAnswer(true),
			},
			want: 2,
		},
		{
			name: "one wrong",
			answers: map[int]domain.AnswerValue{
				1: domain.OptionAnswer(0),
				2: domain.BoolAnswer(true),
			},
			want: 1,
		},
		{
			name:    "no answers",
			answers: map[int]domain.AnswerValue{},
			want:    0,
		},
		{
			name: "kind mismatch never counts",
			answers: map[int]domain.AnswerValue{
				1: domain.BoolAnswer(true),
				2: domain.OptionAnswer(1),
			},
			want: 0,
		},
		{
			name: "extra answers ignored",
			answers: map[int]domain.AnswerValue{
				1:  domain.OptionAnswer(1),
				99: domain.OptionAnswer(1),
			},
			want: 1,
		},
	}

	for _, tc := range cases {
		if got := app.ComputeScore(questions, tc.answers); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
