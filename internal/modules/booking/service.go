package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homeservice/internal/domain"
	"homeservice/internal/notification"
	"homeservice/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	workers  WorkerReader
	services ServiceReader
	users    UserReader
	notifs   *notification.Dispatcher
}

func NewService(
	bookings BookingRepository,
	workers WorkerReader,
	services ServiceReader,
	users UserReader,
	notifs *notification.Dispatcher,
) *Service {
	return &Service{
		bookings: bookings,
		workers:  workers,
		services: services,
		users:    users,
		notifs:   notifs,
	}
}

// Create starts a booking in status pending. Only user actors may book;
// the worker must exist and the selected service must belong to it.
func (s *Service) Create(ctx context.Context, actor domain.Actor, workerID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if actor.Role != domain.RoleUser {
		return nil, ErrForbidden
	}

	w, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.ServiceID == 0 {
		return nil, ErrServiceRequired
	}
	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceMismatch
		}
		return nil, err
	}
	if svc.WorkerID != w.ID {
		return nil, ErrServiceMismatch
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, ErrValidation
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		UserID:    actor.ID,
		WorkerID:  w.ID,
		ServiceID: svc.ID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
		Status:    domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if u, err := s.users.GetByID(ctx, actor.ID); err == nil {
		u.PasswordHash = ""
		b.User = u
	}
	b.Worker = w
	b.Service = svc

	s.notifyWorkerOwner(ctx, w,
		"New booking request",
		fmt.Sprintf("You have a new booking request for %s on %s at %s.", svc.Name, b.Date, b.Time),
	)

	return b, nil
}

// UpdateStatusByWorker moves a booking to a worker-side status. The
// lookup is scoped to workers owned by the actor, so foreign bookings
// surface as not found. Transitions out of a terminal status fail.
func (s *Service) UpdateStatusByWorker(ctx context.Context, actor domain.Actor, bookingID int64, rawStatus string) (*domain.Booking, error) {
	if actor.Role != domain.RoleWorker {
		return nil, ErrForbidden
	}

	status, ok := domain.ParseBookingStatus(rawStatus)
	if !ok || !isWorkerStatus(status) {
		return nil, ErrInvalidStatus
	}

	b, err := s.bookings.TransitionOwnedByWorker(ctx, bookingID, actor.ID, status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrTerminalStatus):
			return nil, ErrTerminalState
		default:
			return nil, err
		}
	}

	if u, err := s.users.GetByID(ctx, b.UserID); err == nil {
		s.notifs.Dispatch(u.Email,
			"Booking status updated",
			fmt.Sprintf("Your booking #%d is now %s.", b.ID, b.Status),
		)
	}

	return b, nil
}

// Cancel lets the booking's own user cancel while it is still pending
// or accepted.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	if actor.Role != domain.RoleUser {
		return nil, ErrForbidden
	}

	b, err := s.bookings.CancelOwnedByUser(ctx, bookingID, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrTerminalStatus):
			return nil, ErrTerminalState
		default:
			return nil, err
		}
	}

	if w, err := s.workers.GetByID(ctx, b.WorkerID); err == nil {
		s.notifyWorkerOwner(ctx, w,
			"Booking canceled",
			fmt.Sprintf("Booking #%d for %s at %s was canceled by the customer.", b.ID, b.Date, b.Time),
		)
	}

	return b, nil
}

func (s *Service) ListForUser(ctx context.Context, actor domain.Actor) ([]repository.BookingDetails, error) {
	if actor.Role != domain.RoleUser {
		return nil, ErrForbidden
	}
	return s.bookings.ListByUser(ctx, actor.ID)
}

func (s *Service) ListForWorker(ctx context.Context, actor domain.Actor) ([]repository.BookingDetails, error) {
	if actor.Role != domain.RoleWorker {
		return nil, ErrForbidden
	}
	return s.bookings.ListByWorkerOwner(ctx, actor.ID)
}

func isWorkerStatus(st domain.BookingStatus) bool {
	switch st {
	case domain.BookingAccepted, domain.BookingDeclined, domain.BookingCompleted, domain.BookingCanceled:
		return true
	default:
		return false
	}
}

func (s *Service) notifyWorkerOwner(ctx context.Context, w *domain.Worker, subject, body string) {
	if w.OwnerID == nil {
		return
	}
	owner, err := s.users.GetByID(ctx, *w.OwnerID)
	if err != nil {
		return
	}
	s.notifs.Dispatch(owner.Email, subject, body)
}
