package recorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizbot/internal/domain"
)

// --- MockResultStore ---
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) Append(ctx context.Context, result domain.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func TestRecord_AppendsCompleteResult(t *testing.T) {
	store := new(MockResultStore)
	store.On("Append", mock.Anything, mock.MatchedBy(func(r domain.Result) bool {
		return r.UserID == 42 &&
			r.Subject == "science" &&
			r.Topic == domain.TopicRandom &&
			r.Score == 7 &&
			r.Total == 10 &&
			len(r.ID) == 26 &&
			r.CompletedAt.Location() == time.UTC &&
			time.Since(r.CompletedAt) < time.Minute
	})).Return(nil)

	r := New(store, zap.NewNop())
	err := r.Record(context.Background(), 42, "science", domain.TopicRandom, 7, 10)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRecord_UniqueIDsPerResult(t *testing.T) {
	store := new(MockResultStore)
	var ids []string
	store.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ids = append(ids, args.Get(1).(domain.Result).ID)
	}).Return(nil)

	r := New(store, zap.NewNop())
	require.NoError(t, r.Record(context.Background(), 1, "s", "t", 0, 1))
	require.NoError(t, r.Record(context.Background(), 1, "s", "t", 1, 1))

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestRecord_SurfacesStoreFailure(t *testing.T) {
	store := new(MockResultStore)
	store.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down"))

	r := New(store, zap.NewNop())
	err := r.Record(context.Background(), 42, "science", "physics", 7, 10)

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrStoreFailure, domainErr.Code)
}
