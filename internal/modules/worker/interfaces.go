package worker

import (
	"context"

	"homeservice/internal/domain"
)

type WorkerRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Worker, error)
	Update(ctx context.Context, w *domain.Worker) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	ListByWorker(ctx context.Context, workerID int64) ([]domain.Service, error)
	DeleteOwned(ctx context.Context, serviceID, workerID int64) error
}
