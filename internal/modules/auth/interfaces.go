package auth

import (
	"context"

	"homeservice/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// WorkerRepositoryInterface creates the worker profile during worker registration.
type WorkerRepositoryInterface interface {
	Create(ctx context.Context, w *domain.Worker) error
}
