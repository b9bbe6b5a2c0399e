package worker

import (
	"context"
	"errors"
	"strings"

	"homeservice/internal/domain"
	"homeservice/internal/pkg/validator"

	"gorm.io/gorm"
)

// Service handles worker self-management: own profile and own catalog.
// Every operation resolves the worker profile through the owning actor,
// so there is no way to touch another worker's data.
type Service struct {
	workers  WorkerRepository
	services ServiceRepository
}

func NewService(workers WorkerRepository, services ServiceRepository) *Service {
	return &Service{workers: workers, services: services}
}

func (s *Service) GetProfile(ctx context.Context, actor domain.Actor) (*domain.Worker, error) {
	return s.resolveOwn(ctx, actor)
}

func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, req UpdateProfileRequest) (*domain.Worker, error) {
	w, err := s.resolveOwn(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		w.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		w.Phone = *req.Phone
	}
	if req.Profession != nil {
		w.Profession = *req.Profession
	}
	if req.Experience != nil {
		w.Experience = *req.Experience
	}
	if req.Location != nil {
		w.Location = *req.Location
	}
	if req.Bio != nil {
		w.Bio = *req.Bio
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}

	if fields := validator.Validate(w); fields != nil {
		return nil, ErrValidation
	}

	if err := s.workers.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) ListServices(ctx context.Context, actor domain.Actor) ([]domain.Service, error) {
	w, err := s.resolveOwn(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.services.ListByWorker(ctx, w.ID)
}

func (s *Service) AddService(ctx context.Context, actor domain.Actor, req CreateServiceRequest) (*domain.Service, error) {
	w, err := s.resolveOwn(ctx, actor)
	if err != nil {
		return nil, err
	}

	svc := &domain.Service{
		WorkerID:    w.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
	}
	if fields := validator.Validate(svc); fields != nil {
		return nil, ErrValidation
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// RemoveService deletes a catalog entry; bookings that reference it are
// left in place.
func (s *Service) RemoveService(ctx context.Context, actor domain.Actor, serviceID int64) error {
	w, err := s.resolveOwn(ctx, actor)
	if err != nil {
		return err
	}

	if err := s.services.DeleteOwned(ctx, serviceID, w.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) resolveOwn(ctx context.Context, actor domain.Actor) (*domain.Worker, error) {
	if actor.Role != domain.RoleWorker {
		return nil, ErrForbidden
	}
	w, err := s.workers.GetByOwnerID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}
