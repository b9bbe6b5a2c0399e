package rating

import (
	"context"
	"encoding/json"
	"testing"

	"homeservice/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Submit(ctx context.Context, rv *domain.Rating) (*domain.RatingSummary, []domain.ReviewEntry, error) {
	args := m.Called(ctx, rv)
	var summary *domain.RatingSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.RatingSummary)
	}
	var reviews []domain.ReviewEntry
	if args.Get(1) != nil {
		reviews = args.Get(1).([]domain.ReviewEntry)
	}
	return summary, reviews, args.Error(2)
}

type MockWorkerReader struct {
	mock.Mock
}

func (m *MockWorkerReader) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func userActor() domain.Actor { return domain.Actor{ID: 10, Role: domain.RoleUser} }

func TestParseScore(t *testing.T) {
	cases := []struct {
		name    string
		raw     any
		want    int
		wantErr error
	}{
		{"missing", nil, 0, ErrRatingRequired},
		{"empty string", "  ", 0, ErrRatingRequired},
		{"json float", float64(4), 4, nil},
		{"fractional truncates", float64(4.9), 4, nil},
		{"json number", json.Number("3"), 3, nil},
		{"numeric string", "5", 5, nil},
		{"padded string", " 2 ", 2, nil},
		{"non-numeric string", "abc", 0, ErrRatingNotNumber},
		{"bool", true, 0, ErrRatingNotNumber},
		{"too low", float64(0), 0, ErrRatingOutOfRange},
		{"too high", float64(6), 0, ErrRatingOutOfRange},
		{"negative", float64(-1), 0, ErrRatingOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := parseScore(tc.raw)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, score)
		})
	}
}

func TestService_Submit_Success(t *testing.T) {
	ratings := new(MockRatingRepository)
	workers := new(MockWorkerReader)

	workers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Worker{ID: 5}, nil)
	ratings.On("Submit", mock.Anything, mock.MatchedBy(func(rv *domain.Rating) bool {
		return rv.WorkerID == 5 && rv.UserID == 10 && rv.Rating == 4 && rv.Review == "Great work"
	})).Return(
		&domain.RatingSummary{AverageRating: 4.3, TotalRatings: 4},
		[]domain.ReviewEntry{{ID: 1, Rating: 4, Review: "Great work", Username: "alice"}},
		nil,
	)

	svc := NewService(ratings, workers)

	summary, err := svc.Submit(context.Background(), userActor(), 5, SubmitRatingRequest{
		Rating: float64(4),
		Review: "  Great work  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, 4.3, summary.AverageRating)
	assert.Equal(t, int64(4), summary.TotalRatings)
	assert.Len(t, summary.Reviews, 1)
}

func TestService_Submit_ForbiddenForWorkerActor(t *testing.T) {
	svc := NewService(new(MockRatingRepository), new(MockWorkerReader))

	_, err := svc.Submit(context.Background(), domain.Actor{ID: 20, Role: domain.RoleWorker}, 5, SubmitRatingRequest{Rating: float64(4)})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Submit_WorkerNotFound(t *testing.T) {
	workers := new(MockWorkerReader)
	workers.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(new(MockRatingRepository), workers)

	_, err := svc.Submit(context.Background(), userActor(), 77, SubmitRatingRequest{Rating: float64(4)})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Submit_InvalidScoreNeverHitsRepo(t *testing.T) {
	ratings := new(MockRatingRepository)
	workers := new(MockWorkerReader)
	workers.On("GetByID", mock.Anything, int64(5)).Return(&domain.Worker{ID: 5}, nil)

	svc := NewService(ratings, workers)

	_, err := svc.Submit(context.Background(), userActor(), 5, SubmitRatingRequest{Rating: "many"})
	assert.ErrorIs(t, err, ErrRatingNotNumber)

	_, err = svc.Submit(context.Background(), userActor(), 5, SubmitRatingRequest{})
	assert.ErrorIs(t, err, ErrRatingRequired)

	ratings.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}
