package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quizbot/internal/domain"
)

// ResultStore implements domain.ResultStore on a Postgres quiz_results
// table. Rows are append-only and never updated.
type ResultStore struct {
	db *sqlx.DB
}

// NewResultStore creates a new instance of ResultStore.
func NewResultStore(db *sqlx.DB) domain.ResultStore {
	return &ResultStore{db: db}
}

// Append implements domain.ResultStore.
func (s *ResultStore) Append(ctx context.Context, result domain.Result) error {
	query := `INSERT INTO quiz_results (id, user_id, subject, topic, score, total, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.db.ExecContext(ctx, query,
		result.ID,
		result.UserID,
		result.Subject,
		result.Topic,
		result.Score,
		result.Total,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz result %s: %w", result.ID, err)
	}
	return nil
}
