package engine

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quizbot/internal/domain"
)

// --- MockSampler ---
type MockSampler struct {
	mock.Mock
}

func (m *MockSampler) Sample(ctx context.Context, userID int64, subject, topic string, n int) []domain.Question {
	args := m.Called(ctx, userID, subject, topic, n)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Question)
}

// --- MockRecorder ---
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, userID int64, subject, topic string, score, total int) error {
	args := m.Called(ctx, userID, subject, topic, score, total)
	return args.Error(0)
}

// --- MockQuestionStore ---
type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) ListSubjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionStore) ListTopics(ctx context.Context, subject string) ([]string, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionStore) ListQuestions(ctx context.Context, subject, topic string) ([]domain.RawQuestion, error) {
	args := m.Called(ctx, subject, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawQuestion), args.Error(1)
}

// --- MockMembership ---
type MockMembership struct {
	mock.Mock
}

func (m *MockMembership) IsMember(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// --- MockReportSink ---
type MockReportSink struct {
	mock.Mock
}

func (m *MockReportSink) Forward(ctx context.Context, userID int64, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

// --- MockPresenter ---
type MockPresenter struct {
	mock.Mock
}

// allowAll lets every presentation call succeed; individual tests assert
// on the calls they care about.
func (m *MockPresenter) allowAll() {
	m.On("JoinPrompt", mock.Anything, mock.Anything).Return(nil)
	m.On("ReadyPrompt", mock.Anything, mock.Anything).Return(nil)
	m.On("SubjectList", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.On("TopicList", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.On("QuestionCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.On("AnswerFeedback", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.On("QuizSummary", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.On("PostQuizMenu", mock.Anything, mock.Anything).Return(nil)
	m.On("ReportPrompt", mock.Anything, mock.Anything).Return(nil)
	m.On("Notice", mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func (m *MockPresenter) JoinPrompt(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenter) ReadyPrompt(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenter) SubjectList(ctx context.Context, userID int64, subjects []string) error {
	args := m.Called(ctx, userID, subjects)
	return args.Error(0)
}

func (m *MockPresenter) TopicList(ctx context.Context, userID int64, subject string, topics []string) error {
	args := m.Called(ctx, userID, subject, topics)
	return args.Error(0)
}

func (m *MockPresenter) QuestionCard(ctx context.Context, userID int64, number, total int, q domain.Question) error {
	args := m.Called(ctx, userID, number, total, q)
	return args.Error(0)
}

func (m *MockPresenter) AnswerFeedback(ctx context.Context, userID int64, correct bool, answer domain.Letter, answerText string) error {
	args := m.Called(ctx, userID, correct, answer, answerText)
	return args.Error(0)
}

func (m *MockPresenter) QuizSummary(ctx context.Context, userID int64, score, total int) error {
	args := m.Called(ctx, userID, score, total)
	return args.Error(0)
}

func (m *MockPresenter) PostQuizMenu(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenter) ReportPrompt(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenter) Notice(ctx context.Context, userID int64, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}
