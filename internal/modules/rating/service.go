package rating

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"homeservice/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	ratings RatingRepository
	workers WorkerReader
}

func NewService(ratings RatingRepository, workers WorkerReader) *Service {
	return &Service{ratings: ratings, workers: workers}
}

// Submit upserts the caller's rating for a worker and returns the
// recomputed aggregate. One rating per (worker, user): resubmitting
// overwrites score and review, never appends.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, workerID int64, req SubmitRatingRequest) (*Summary, error) {
	if actor.Role != domain.RoleUser {
		return nil, ErrForbidden
	}

	if _, err := s.workers.GetByID(ctx, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	score, err := parseScore(req.Rating)
	if err != nil {
		return nil, err
	}

	rv := &domain.Rating{
		WorkerID: workerID,
		UserID:   actor.ID,
		Rating:   score,
		Review:   strings.TrimSpace(req.Review),
	}

	summary, reviews, err := s.ratings.Submit(ctx, rv)
	if err != nil {
		return nil, err
	}

	return &Summary{
		AverageRating: summary.AverageRating,
		TotalRatings:  summary.TotalRatings,
		Reviews:       reviews,
	}, nil
}

// parseScore accepts the rating value however JSON delivered it (number
// or numeric string) and validates the [1,5] range. Each failure mode
// keeps its own sentinel for a distinct API message.
func parseScore(raw any) (int, error) {
	if raw == nil {
		return 0, ErrRatingRequired
	}

	var score int
	switch v := raw.(type) {
	case float64:
		score = int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, ErrRatingNotNumber
		}
		score = int(n)
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, ErrRatingRequired
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, ErrRatingNotNumber
		}
		score = n
	default:
		return 0, ErrRatingNotNumber
	}

	if score < 1 || score > 5 {
		return 0, ErrRatingOutOfRange
	}
	return score, nil
}
