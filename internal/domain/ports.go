package domain

import "context"

// QuestionStore defines the interface (port) for querying stored question
// documents. Implementations are the adapters (e.g. the sqlx-backed store
// in internal/repository).
type QuestionStore interface {
	ListSubjects(ctx context.Context) ([]string, error)
	ListTopics(ctx context.Context, subject string) ([]string, error)
	ListQuestions(ctx context.Context, subject, topic string) ([]RawQuestion, error)
}

// ProgressStore persists the per-scope set of question IDs already served
// to a user. The set only ever grows; Upsert has superset-write semantics
// (create if absent, add the given IDs if present).
type ProgressStore interface {
	Get(ctx context.Context, scope ScopeKey) (map[string]struct{}, error)
	Upsert(ctx context.Context, scope ScopeKey, servedIDs map[string]struct{}) error
}

// ResultStore persists completed quiz results, append-only.
type ResultStore interface {
	Append(ctx context.Context, result Result) error
}

// MembershipChecker reports whether a user belongs to the community the
// quiz is gated on. An error means the check could not be performed; the
// caller decides whether that fails open or closed.
type MembershipChecker interface {
	IsMember(ctx context.Context, userID int64) (bool, error)
}

// ReportSink receives free-text issue reports from users.
type ReportSink interface {
	Forward(ctx context.Context, userID int64, text string) error
}

// Presenter renders quiz flow output to the user. Delivery failures are
// returned so callers can log them; they never abort a session.
type Presenter interface {
	// JoinPrompt asks a non-member to join before starting.
	JoinPrompt(ctx context.Context, userID int64) error
	// ReadyPrompt shows the "ready to start?" affordance.
	ReadyPrompt(ctx context.Context, userID int64) error
	// SubjectList offers the available subjects.
	SubjectList(ctx context.Context, userID int64, subjects []string) error
	// TopicList offers the subject's topics plus a synthetic "Random" choice.
	TopicList(ctx context.Context, userID int64, subject string, topics []string) error
	// QuestionCard renders one question with its four labeled options.
	QuestionCard(ctx context.Context, userID int64, number, total int, q Question) error
	// AnswerFeedback tells the user whether their pick was right.
	AnswerFeedback(ctx context.Context, userID int64, correct bool, answer Letter, answerText string) error
	// QuizSummary shows the final score and the post-quiz menu.
	QuizSummary(ctx context.Context, userID int64, score, total int) error
	// PostQuizMenu re-shows the post-quiz menu on its own.
	PostQuizMenu(ctx context.Context, userID int64) error
	// ReportPrompt asks the user to describe their issue.
	ReportPrompt(ctx context.Context, userID int64) error
	// Notice sends a plain informational message.
	Notice(ctx context.Context, userID int64, text string) error
}
