package app

import "quiz-attempt-service/internal/domain"

// ComputeScore counts the questions whose recorded answer strictly matches
// both kind and correct value. Unanswered questions contribute zero; there
// is no partial credit. The function is pure, so callers can use it mid
// attempt for live progress as well as for the final tally.
func ComputeScore(questions []domain.Question, answers map[int]domain.AnswerValue) int {
	score := 0
	for _, q := range questions {
		value, ok := answers[q.ID]
		if !ok {
			continue
		}
		if value.Matches(q) {
			score++
		}
	}
	return score
}
