package directory

import (
	"context"

	"homeservice/internal/domain"
)

type WorkerReader interface {
	List(ctx context.Context) ([]domain.Worker, error)
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

type ServiceReader interface {
	ListByWorker(ctx context.Context, workerID int64) ([]domain.Service, error)
}

type RatingReader interface {
	AggregateForWorker(ctx context.Context, workerID int64) (*domain.RatingSummary, error)
	ListReviews(ctx context.Context, workerID int64) ([]domain.ReviewEntry, error)
}
