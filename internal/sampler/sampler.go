// Package sampler selects questions a user has not been served before.
package sampler

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"quizbot/internal/domain"
	"quizbot/internal/normalize"
)

// Sampler draws up to n unseen questions for a (user, subject, topic)
// scope, recording every selected question against the scope's served set
// before returning. A question is spent the moment it is selected for
// delivery, even if the user never answers it, so a crashed session cannot
// cause duplicate delivery.
type Sampler struct {
	questions domain.QuestionStore
	progress  domain.ProgressStore
	log       *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Sampler. The rand source is injectable so tests can seed it.
func New(questions domain.QuestionStore, progress domain.ProgressStore, rng *rand.Rand, log *zap.Logger) *Sampler {
	return &Sampler{
		questions: questions,
		progress:  progress,
		rng:       rng,
		log:       log,
	}
}

// Sample returns 0..n canonical questions for the scope. An empty topic
// means the sentinel "random" scope: candidates are drawn from every topic
// under the subject. Every store failure collapses to an empty result; the
// caller treats that as "no questions available", never as an error.
func (s *Sampler) Sample(ctx context.Context, userID int64, subject, topic string, n int) []domain.Question {
	if n <= 0 {
		return nil
	}
	scope := domain.NewScopeKey(userID, subject, topic)

	served, err := s.progress.Get(ctx, scope)
	if err != nil {
		s.log.Warn("failed to load progress, serving nothing",
			zap.Int64("user_id", userID),
			zap.String("subject", subject),
			zap.String("topic", scope.Topic),
			zap.Error(err))
		return nil
	}
	if served == nil {
		served = make(map[string]struct{})
	}

	pool := s.candidates(ctx, scope, served)
	if len(pool) == 0 {
		return nil
	}

	s.shuffle(pool)

	result := make([]domain.Question, 0, n)
	fresh := make(map[string]struct{})
	for _, raw := range pool {
		if len(result) == n {
			break
		}
		q, err := normalize.Normalize(raw)
		if err != nil {
			// Malformed documents are skipped, not spent: they were never
			// selected for delivery.
			s.log.Warn("skipping malformed question",
				zap.String("key", raw.Key),
				zap.Error(err))
			continue
		}
		if _, dup := served[q.SourceID]; dup {
			// The random scope can surface the same sourceID under two
			// topics; only the first copy is served.
			continue
		}
		if q.CorrectAssumed {
			s.log.Warn("answer key could not be parsed, assuming A",
				zap.String("source_id", q.SourceID),
				zap.String("subject", subject),
				zap.String("topic", scope.Topic))
		}
		result = append(result, q)
		served[q.SourceID] = struct{}{}
		fresh[q.SourceID] = struct{}{}
	}

	if len(fresh) > 0 {
		if err := s.progress.Upsert(ctx, scope, served); err != nil {
			// Availability over strict dedup: the round still runs.
			s.log.Error("failed to persist served question IDs",
				zap.Int64("user_id", userID),
				zap.String("subject", subject),
				zap.String("topic", scope.Topic),
				zap.Error(err))
		}
	}
	return result
}

// candidates builds the unseen candidate pool for the scope. For the
// random scope it unions every topic's documents; dedup across topics is
// by sourceID only.
func (s *Sampler) candidates(ctx context.Context, scope domain.ScopeKey, served map[string]struct{}) []domain.RawQuestion {
	topics := []string{scope.Topic}
	if scope.Topic == domain.TopicRandom {
		all, err := s.questions.ListTopics(ctx, scope.Subject)
		if err != nil {
			s.log.Warn("failed to list topics",
				zap.String("subject", scope.Subject),
				zap.Error(err))
			return nil
		}
		topics = all
	}

	var pool []domain.RawQuestion
	for _, topic := range topics {
		docs, err := s.questions.ListQuestions(ctx, scope.Subject, topic)
		if err != nil {
			s.log.Warn("failed to list questions",
				zap.String("subject", scope.Subject),
				zap.String("topic", topic),
				zap.Error(err))
			return nil
		}
		for _, raw := range docs {
			if _, seen := served[normalize.SourceID(raw)]; seen {
				continue
			}
			pool = append(pool, raw)
		}
	}
	return pool
}

// shuffle applies a uniform Fisher-Yates permutation.
func (s *Sampler) shuffle(pool []domain.RawQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
}
