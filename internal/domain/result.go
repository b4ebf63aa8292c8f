package domain

import "time"

// Result records one completed quiz round. Results are append-only and
// never mutated after creation.
type Result struct {
	ID          string
	UserID      int64
	Subject     string
	Topic       string // TopicRandom when the round spanned all topics
	Score       int
	Total       int
	CompletedAt time.Time // UTC
}

// ScopeKey identifies the dedup scope for question progress tracking:
// one served-set per (user, subject, topic-or-random) triple.
type ScopeKey struct {
	UserID  int64
	Subject string
	Topic   string
}

// NewScopeKey builds a scope key, mapping an empty topic to TopicRandom.
func NewScopeKey(userID int64, subject, topic string) ScopeKey {
	if topic == "" {
		topic = TopicRandom
	}
	return ScopeKey{UserID: userID, Subject: subject, Topic: topic}
}
