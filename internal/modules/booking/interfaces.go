package booking

import (
	"context"

	"homeservice/internal/domain"
	"homeservice/internal/repository"
)

// BookingRepository covers the booking persistence the state machine needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	TransitionOwnedByWorker(ctx context.Context, bookingID, ownerUserID int64, status domain.BookingStatus) (*domain.Booking, error)
	CancelOwnedByUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]repository.BookingDetails, error)
	ListByWorkerOwner(ctx context.Context, ownerUserID int64) ([]repository.BookingDetails, error)
}

// WorkerReader resolves the booking target.
type WorkerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

// ServiceReader resolves the referenced catalog entry.
type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// UserReader resolves actors for nested views and notification recipients.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
