package directory

import (
	"context"
	"errors"

	"homeservice/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("worker not found")

// Service is a pure read composition: it joins a worker with its
// catalog and rating data for discovery views. Inactive workers are
// listed alongside active ones.
type Service struct {
	workers  WorkerReader
	services ServiceReader
	ratings  RatingReader
}

func NewService(workers WorkerReader, services ServiceReader, ratings RatingReader) *Service {
	return &Service{workers: workers, services: services, ratings: ratings}
}

func (s *Service) GetList(ctx context.Context) ([]WorkerSummary, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]WorkerSummary, 0, len(workers))
	for _, w := range workers {
		summary, err := s.composeSummary(ctx, w)
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

func (s *Service) GetDetail(ctx context.Context, workerID int64) (*WorkerDetail, error) {
	w, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	summary, err := s.composeSummary(ctx, *w)
	if err != nil {
		return nil, err
	}

	reviews, err := s.ratings.ListReviews(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	return &WorkerDetail{
		WorkerSummary: *summary,
		Reviews:       reviews,
	}, nil
}

func (s *Service) composeSummary(ctx context.Context, w domain.Worker) (*WorkerSummary, error) {
	services, err := s.services.ListByWorker(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	agg, err := s.ratings.AggregateForWorker(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	return &WorkerSummary{
		Worker:        w,
		Services:      services,
		AverageRating: agg.AverageRating,
		TotalRatings:  agg.TotalRatings,
	}, nil
}
