// Package engine drives per-user quiz sessions through the selection and
// answering flow. Events for one user are handled strictly in order under
// the session lock; different users proceed concurrently.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"quizbot/internal/domain"
)

// Callback data exchanged with the chat transport's buttons.
const (
	CallbackStart  = "start"
	CallbackReady  = "ready"
	CallbackAgain  = "again"
	CallbackReport = "report"

	subjectPrefix = "subject:"
	topicPrefix   = "topic:"
	answerPrefix  = "answer:"
)

// SubjectCallback builds the callback data for a subject button.
func SubjectCallback(subject string) string { return subjectPrefix + subject }

// TopicCallback builds the callback data for a topic button.
func TopicCallback(topic string) string { return topicPrefix + topic }

// AnswerCallback builds the callback data for an answer option button.
func AnswerCallback(l domain.Letter) string { return answerPrefix + string(l) }

// Sampler supplies unseen questions for a scope. An empty result means "no
// questions available".
type Sampler interface {
	Sample(ctx context.Context, userID int64, subject, topic string, n int) []domain.Question
}

// Recorder persists a completed round's score.
type Recorder interface {
	Record(ctx context.Context, userID int64, subject, topic string, score, total int) error
}

// Config holds the engine's tunables.
type Config struct {
	// QuestionsPerRound is the sample size requested per quiz.
	QuestionsPerRound int
	// FeedbackDelay paces the gap between answer feedback and the next
	// card. Cosmetic, not a correctness requirement.
	FeedbackDelay time.Duration
	// SessionIdleTTL evicts sessions with no activity for this long.
	// Zero disables eviction.
	SessionIdleTTL time.Duration
	// MembershipFailOpen treats a failed membership check as membership.
	MembershipFailOpen bool
}

// Engine is the session state machine. It owns the in-memory session map;
// all stores and the transport are injected.
type Engine struct {
	cfg        Config
	sampler    Sampler
	recorder   Recorder
	store      domain.QuestionStore
	membership domain.MembershipChecker
	presenter  domain.Presenter
	reports    domain.ReportSink
	log        *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

// New creates an Engine.
func New(
	cfg Config,
	sampler Sampler,
	recorder Recorder,
	store domain.QuestionStore,
	membership domain.MembershipChecker,
	presenter domain.Presenter,
	reports domain.ReportSink,
	log *zap.Logger,
) *Engine {
	return &Engine{
		cfg:        cfg,
		sampler:    sampler,
		recorder:   recorder,
		store:      store,
		membership: membership,
		presenter:  presenter,
		reports:    reports,
		log:        log,
		sessions:   make(map[int64]*session),
	}
}

// HandleStart processes the start command.
func (e *Engine) HandleStart(ctx context.Context, userID int64) {
	e.withSession(userID, func(s *session) {
		e.startFlow(ctx, userID, s)
	})
}

// HandleSelection processes a button press carrying callback data.
func (e *Engine) HandleSelection(ctx context.Context, userID int64, data string) {
	e.withSession(userID, func(s *session) {
		switch {
		case data == CallbackStart:
			e.startFlow(ctx, userID, s)
		case data == CallbackReady:
			if s.state != StateAwaitingReady {
				e.reprompt(ctx, userID, s)
				return
			}
			e.enterSubjectSelection(ctx, userID, s)
		case data == CallbackAgain:
			if s.state != StatePostQuiz {
				e.reprompt(ctx, userID, s)
				return
			}
			s.reset()
			s.state = StateAwaitingReady
			e.show(userID, e.presenter.ReadyPrompt(ctx, userID))
		case data == CallbackReport:
			if s.state != StatePostQuiz {
				e.reprompt(ctx, userID, s)
				return
			}
			s.state = StateReportingIssue
			e.show(userID, e.presenter.ReportPrompt(ctx, userID))
		case strings.HasPrefix(data, subjectPrefix):
			e.chooseSubject(ctx, userID, s, strings.TrimPrefix(data, subjectPrefix))
		case strings.HasPrefix(data, topicPrefix):
			e.chooseTopic(ctx, userID, s, strings.TrimPrefix(data, topicPrefix))
		case strings.HasPrefix(data, answerPrefix):
			e.answer(ctx, userID, s, strings.TrimPrefix(data, answerPrefix))
		default:
			e.log.Debug("unrecognized callback data",
				zap.Int64("user_id", userID),
				zap.String("data", data))
			e.reprompt(ctx, userID, s)
		}
	})
}

// HandleMessage processes a free-text message. Outside the issue-report
// state free text is an invalid input and re-prompts the current state.
func (e *Engine) HandleMessage(ctx context.Context, userID int64, text string) {
	e.withSession(userID, func(s *session) {
		if s.state != StateReportingIssue {
			e.reprompt(ctx, userID, s)
			return
		}
		if err := e.reports.Forward(ctx, userID, text); err != nil {
			e.log.Error("failed to forward issue report",
				zap.Int64("user_id", userID),
				zap.Error(err))
		}
		e.show(userID, e.presenter.Notice(ctx, userID, "Thanks, your report has been passed on."))
		s.state = StatePostQuiz
		e.show(userID, e.presenter.PostQuizMenu(ctx, userID))
	})
}

func (e *Engine) startFlow(ctx context.Context, userID int64, s *session) {
	member, err := e.membership.IsMember(ctx, userID)
	if err != nil {
		e.log.Warn("membership check failed",
			zap.Int64("user_id", userID),
			zap.Bool("fail_open", e.cfg.MembershipFailOpen),
			zap.Error(err))
		member = e.cfg.MembershipFailOpen
	}
	s.reset()
	if !member {
		e.show(userID, e.presenter.JoinPrompt(ctx, userID))
		return
	}
	s.state = StateAwaitingReady
	e.show(userID, e.presenter.ReadyPrompt(ctx, userID))
}

func (e *Engine) enterSubjectSelection(ctx context.Context, userID int64, s *session) {
	subjects, err := e.store.ListSubjects(ctx)
	if err != nil {
		e.log.Warn("failed to list subjects", zap.Error(err))
		subjects = nil
	}
	if len(subjects) == 0 {
		s.reset()
		e.show(userID, e.presenter.Notice(ctx, userID, "No subjects are available right now. Try again later."))
		return
	}
	s.subjects = subjects
	s.state = StateSelectingSubject
	e.show(userID, e.presenter.SubjectList(ctx, userID, subjects))
}

func (e *Engine) chooseSubject(ctx context.Context, userID int64, s *session, subject string) {
	if s.state != StateSelectingSubject {
		e.reprompt(ctx, userID, s)
		return
	}
	if !contains(s.subjects, subject) {
		// Rejected without a state change, per the guard.
		e.show(userID, e.presenter.Notice(ctx, userID, "Please pick a subject from the list."))
		e.show(userID, e.presenter.SubjectList(ctx, userID, s.subjects))
		return
	}
	topics, err := e.store.ListTopics(ctx, subject)
	if err != nil {
		// The synthetic Random choice is still offered on its own; the
		// sampler's union fetch decides whether anything is available.
		e.log.Warn("failed to list topics",
			zap.String("subject", subject),
			zap.Error(err))
		topics = nil
	}
	s.subject = subject
	s.topics = topics
	s.state = StateSelectingTopic
	e.show(userID, e.presenter.TopicList(ctx, userID, subject, topics))
}

func (e *Engine) chooseTopic(ctx context.Context, userID int64, s *session, topic string) {
	if s.state != StateSelectingTopic {
		e.reprompt(ctx, userID, s)
		return
	}
	if topic != domain.TopicRandom && !contains(s.topics, topic) {
		e.show(userID, e.presenter.Notice(ctx, userID, "Please pick a topic from the list."))
		e.show(userID, e.presenter.TopicList(ctx, userID, s.subject, s.topics))
		return
	}
	sampleTopic := topic
	if topic == domain.TopicRandom {
		sampleTopic = ""
	}
	questions := e.sampler.Sample(ctx, userID, s.subject, sampleTopic, e.cfg.QuestionsPerRound)
	if len(questions) == 0 {
		s.reset()
		e.show(userID, e.presenter.Notice(ctx, userID, "No unseen questions left there. Try another topic."))
		return
	}
	s.topic = topic
	s.questions = questions
	s.currentIndex = 0
	s.score = 0
	s.state = StateAnswering
	e.log.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.String("subject", s.subject),
		zap.String("topic", topic),
		zap.Int("questions", len(questions)))
	e.show(userID, e.presenter.QuestionCard(ctx, userID, 1, len(questions), questions[0]))
}

func (e *Engine) answer(ctx context.Context, userID int64, s *session, letter string) {
	if s.state != StateAnswering || s.currentIndex >= len(s.questions) {
		// Stale or duplicate press after the round ended.
		s.reset()
		e.show(userID, e.presenter.Notice(ctx, userID, "No active question. Send /start to begin a new quiz."))
		return
	}
	picked := domain.Letter(strings.ToUpper(strings.TrimSpace(letter)))
	if _, ok := s.questions[s.currentIndex].Options[picked]; !ok {
		e.reprompt(ctx, userID, s)
		return
	}

	q := s.questions[s.currentIndex]
	correct := picked == q.Correct
	if correct {
		s.score++
	}
	e.show(userID, e.presenter.AnswerFeedback(ctx, userID, correct, q.Correct, q.OptionText(q.Correct)))
	s.currentIndex++

	if s.currentIndex < len(s.questions) {
		e.pace()
		e.show(userID, e.presenter.QuestionCard(ctx, userID, s.currentIndex+1, len(s.questions), s.questions[s.currentIndex]))
		return
	}

	// Round complete: the result write is unconditional and happens
	// exactly once, the instant the last question is answered. A failed
	// write is logged; the round still finishes for the user.
	if err := e.recorder.Record(ctx, userID, s.subject, s.topic, s.score, len(s.questions)); err != nil {
		e.log.Error("failed to record quiz result",
			zap.Int64("user_id", userID),
			zap.String("subject", s.subject),
			zap.String("topic", s.topic),
			zap.Error(err))
	}
	e.pace()
	s.state = StatePostQuiz
	e.show(userID, e.presenter.QuizSummary(ctx, userID, s.score, len(s.questions)))
}

// reprompt re-renders the current state's prompt after an input that does
// not belong to it. Invalid transitions never crash or reset a session.
func (e *Engine) reprompt(ctx context.Context, userID int64, s *session) {
	switch s.state {
	case StateAwaitingReady:
		e.show(userID, e.presenter.ReadyPrompt(ctx, userID))
	case StateSelectingSubject:
		e.show(userID, e.presenter.SubjectList(ctx, userID, s.subjects))
	case StateSelectingTopic:
		e.show(userID, e.presenter.TopicList(ctx, userID, s.subject, s.topics))
	case StateAnswering:
		e.show(userID, e.presenter.QuestionCard(ctx, userID, s.currentIndex+1, len(s.questions), s.questions[s.currentIndex]))
	case StatePostQuiz:
		e.show(userID, e.presenter.PostQuizMenu(ctx, userID))
	case StateReportingIssue:
		e.show(userID, e.presenter.ReportPrompt(ctx, userID))
	default:
		e.show(userID, e.presenter.Notice(ctx, userID, "Send /start to begin."))
	}
}

// withSession runs fn under the user's session lock, creating the session
// on first contact.
func (e *Engine) withSession(userID int64, fn func(s *session)) {
	e.mu.Lock()
	s, ok := e.sessions[userID]
	if !ok {
		s = &session{state: StateIdle}
		e.sessions[userID] = s
	}
	e.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s)
}

func (e *Engine) pace() {
	if e.cfg.FeedbackDelay > 0 {
		time.Sleep(e.cfg.FeedbackDelay)
	}
}

// show logs delivery failures; they never abort a session.
func (e *Engine) show(userID int64, err error) {
	if err != nil {
		e.log.Warn("failed to deliver message",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
