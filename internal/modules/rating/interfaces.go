package rating

import (
	"context"

	"homeservice/internal/domain"
)

// RatingRepository is the transactional ledger: upsert plus aggregate
// recomputation in one consistent snapshot.
type RatingRepository interface {
	Submit(ctx context.Context, rv *domain.Rating) (*domain.RatingSummary, []domain.ReviewEntry, error)
}

type WorkerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}
