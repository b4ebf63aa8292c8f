// Package recorder persists completed quiz results.
package recorder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quizbot/internal/domain"
	"quizbot/internal/util"
)

// Recorder appends one Result per completed round to the result store.
type Recorder struct {
	store domain.ResultStore
	log   *zap.Logger
}

func New(store domain.ResultStore, log *zap.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record writes an append-only result for a completed quiz. The error is
// surfaced to the caller but must not block the user-facing post-quiz
// flow: the round finishes either way.
func (r *Recorder) Record(ctx context.Context, userID int64, subject, topic string, score, total int) error {
	result := domain.Result{
		ID:          util.NewULID(),
		UserID:      userID,
		Subject:     subject,
		Topic:       topic,
		Score:       score,
		Total:       total,
		CompletedAt: time.Now().UTC(),
	}
	if err := r.store.Append(ctx, result); err != nil {
		return domain.NewStoreFailureError("failed to append quiz result", err)
	}
	r.log.Info("quiz result recorded",
		zap.String("result_id", result.ID),
		zap.Int64("user_id", userID),
		zap.String("subject", subject),
		zap.String("topic", topic),
		zap.Int("score", score),
		zap.Int("total", total))
	return nil
}
