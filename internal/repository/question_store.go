package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quizbot/internal/domain"
)

// QuestionStore implements domain.QuestionStore on a Postgres questions
// table. Documents are stored as JSON blobs and decoded into generic field
// maps at this boundary; nothing above the repository layer sees raw JSON.
type QuestionStore struct {
	db *sqlx.DB
}

// NewQuestionStore creates a new instance of QuestionStore.
func NewQuestionStore(db *sqlx.DB) domain.QuestionStore {
	return &QuestionStore{db: db}
}

// ListSubjects implements domain.QuestionStore.
func (s *QuestionStore) ListSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	query := `SELECT DISTINCT subject FROM questions ORDER BY subject`
	if err := s.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// ListTopics implements domain.QuestionStore.
func (s *QuestionStore) ListTopics(ctx context.Context, subject string) ([]string, error) {
	var topics []string
	query := `SELECT DISTINCT topic FROM questions WHERE subject = $1 ORDER BY topic`
	if err := s.db.SelectContext(ctx, &topics, query, subject); err != nil {
		return nil, fmt.Errorf("failed to list topics for subject %s: %w", subject, err)
	}
	return topics, nil
}

// ListQuestions implements domain.QuestionStore. A document whose JSON
// cannot be decoded is returned with empty fields; the normalizer rejects
// it downstream without halting the quiz.
func (s *QuestionStore) ListQuestions(ctx context.Context, subject, topic string) ([]domain.RawQuestion, error) {
	query := `SELECT id, doc FROM questions WHERE subject = $1 AND topic = $2`
	rows, err := s.db.QueryxContext(ctx, query, subject, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions for %s/%s: %w", subject, topic, err)
	}
	defer rows.Close()

	var questions []domain.RawQuestion
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		fields := make(map[string]any)
		if err := json.Unmarshal(doc, &fields); err != nil {
			fields = map[string]any{}
		}
		questions = append(questions, domain.RawQuestion{Key: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate question rows: %w", err)
	}
	return questions, nil
}
