package app

import (
	"sort"

	"quiz-attempt-service/internal/domain"
)

// Less is the leaderboard order: score descending, then duration ascending,
// then earlier submission first. Records equal on all three keys have no
// defined relative order.
func Less(a, b domain.ScoreRecord) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.DurationMs != b.DurationMs {
		return a.DurationMs < b.DurationMs
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// Order returns a copy of records sorted by the leaderboard order. Records
// with identical keys keep their incoming order.
func Order(records []domain.ScoreRecord) []domain.ScoreRecord {
	out := make([]domain.ScoreRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// Partition splits an already ordered slice into the three podium slots and
// the ranked remainder. Podium slots without a record stay nil; nothing is
// fabricated. Stores return pre-ordered slices, so no sort happens here.
func Partition(records []domain.ScoreRecord) domain.Leaderboard {
	var lb domain.Leaderboard
	for i := 0; i < len(records) && i < len(lb.Podium); i++ {
		record := records[i]
		lb.Podium[i] = &record
	}
	for i := len(lb.Podium); i < len(records); i++ {
		lb.Rest = append(lb.Rest, domain.RankedRecord{Rank: i + 1, Record: records[i]})
	}
	return lb
}
