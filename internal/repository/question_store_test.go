package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionStore_ListSubjects(t *testing.T) {
	db, mockSQL := newMockDB(t)
	store := NewQuestionStore(db)

	rows := sqlmock.NewRows([]string{"subject"}).AddRow("history").AddRow("math")
	mockSQL.ExpectQuery("SELECT DISTINCT subject FROM questions").WillReturnRows(rows)

	subjects, err := store.ListSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"history", "math"}, subjects)
}

func TestQuestionStore_ListTopics(t *testing.T) {
	db, mockSQL := newMockDB(t)
	store := NewQuestionStore(db)

	rows := sqlmock.NewRows([]string{"topic"}).AddRow("algebra").AddRow("geometry")
	mockSQL.ExpectQuery("SELECT DISTINCT topic FROM questions").
		WithArgs("math").
		WillReturnRows(rows)

	topics, err := store.ListTopics(context.Background(), "math")
	require.NoError(t, err)
	assert.Equal(t, []string{"algebra", "geometry"}, topics)
}

func TestQuestionStore_ListQuestionsDecodesDocuments(t *testing.T) {
	db, mockSQL := newMockDB(t)
	store := NewQuestionStore(db)

	rows := sqlmock.NewRows([]string{"id", "doc"}).
		AddRow("q1", []byte(`{"question":"What is 2+2?","option_a":"3","option_b":"4","answer":"b"}`)).
		AddRow("q2", []byte(`not json at all`))
	mockSQL.ExpectQuery("SELECT id, doc FROM questions").
		WithArgs("math", "algebra").
		WillReturnRows(rows)

	questions, err := store.ListQuestions(context.Background(), "math", "algebra")
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "q1", questions[0].Key)
	assert.Equal(t, "What is 2+2?", questions[0].Fields["question"])

	// Undecodable documents come back with empty fields; the normalizer
	// rejects them downstream without halting the quiz.
	assert.Equal(t, "q2", questions[1].Key)
	assert.Empty(t, questions[1].Fields)
}

func TestQuestionStore_ListQuestionsError(t *testing.T) {
	db, mockSQL := newMockDB(t)
	store := NewQuestionStore(db)

	mockSQL.ExpectQuery("SELECT id, doc FROM questions").
		WillReturnError(errors.New("connection reset"))

	_, err := store.ListQuestions(context.Background(), "math", "algebra")
	assert.Error(t, err)
}
