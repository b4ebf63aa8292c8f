package engine

import (
	"sync"
	"time"

	"quizbot/internal/domain"
)

// State is a session's position in the quiz flow.
type State int

const (
	StateIdle State = iota
	StateAwaitingReady
	StateSelectingSubject
	StateSelectingTopic
	StateAnswering
	StatePostQuiz
	StateReportingIssue
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReady:
		return "awaiting_ready"
	case StateSelectingSubject:
		return "selecting_subject"
	case StateSelectingTopic:
		return "selecting_topic"
	case StateAnswering:
		return "answering"
	case StatePostQuiz:
		return "post_quiz"
	case StateReportingIssue:
		return "reporting_issue"
	default:
		return "unknown"
	}
}

// session holds one user's in-flight quiz state. Sessions live in process
// memory only: loss on restart is fine because the dedup guarantee is
// carried by the persisted progress records, not by session state.
//
// Invariants: 0 <= currentIndex <= len(questions), score <= currentIndex.
type session struct {
	mu sync.Mutex

	state   State
	subject string
	topic   string // domain.TopicRandom or a concrete topic

	// Choices offered to the user; guards reject anything outside them.
	subjects []string
	topics   []string

	questions    []domain.Question
	currentIndex int
	score        int

	lastSeen time.Time
}

// reset returns the session to Idle with all quiz fields cleared.
func (s *session) reset() {
	s.state = StateIdle
	s.subject = ""
	s.topic = ""
	s.subjects = nil
	s.topics = nil
	s.questions = nil
	s.currentIndex = 0
	s.score = 0
}
