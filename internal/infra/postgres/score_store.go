package postgres

import (
	"context"
	"fmt"

	"quiz-attempt-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ScoreStore persists attempt summaries in the scores table. The database
// assigns id and created_at; rows are append-only.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

func (s *ScoreStore) Append(ctx context.Context, name string, score, total int, durationMs int64) (domain.ScoreRecord, error) {
	record := domain.ScoreRecord{
		Name:       name,
		Score:      score,
		Total:      total,
		DurationMs: durationMs,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO scores (name, score, total, duration_ms) VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		name, score, total, durationMs,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("append score: %w", err)
	}
	return record, nil
}

// TopN returns at most n records already in leaderboard order: score
// descending, duration ascending, earlier submission first.
func (s *ScoreStore) TopN(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, score, total, duration_ms, created_at FROM scores
		 ORDER BY score DESC, duration_ms ASC, created_at ASC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("fetch top scores: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ScoreRecord, 0, n)
	for rows.Next() {
		var record domain.ScoreRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.Score, &record.Total, &record.DurationMs, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch top scores: %w", err)
	}
	return records, nil
}
