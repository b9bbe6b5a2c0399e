package repository

import (
	"context"
	"time"

	"homeservice/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	WorkerID    int64     `gorm:"column:worker_id;index"`
	Name        string    `gorm:"column:name"`
	Description *string   `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.Service {
	return &domain.Service{
		ID:          m.ID,
		WorkerID:    m.WorkerID,
		Name:        m.Name,
		Description: strValue(m.Description),
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
	}
}

func toServiceModel(s *domain.Service) serviceModel {
	return serviceModel{
		ID:          s.ID,
		WorkerID:    s.WorkerID,
		Name:        s.Name,
		Description: strPtr(s.Description),
		Price:       s.Price,
		CreatedAt:   s.CreatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) ListByWorker(ctx context.Context, workerID int64) ([]domain.Service, error) {
	var rows []serviceModel
	tx := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("id ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

// DeleteOwned removes a catalog entry only when it belongs to the given
// worker. Bookings that reference the entry are left untouched.
func (r *ServiceRepository) DeleteOwned(ctx context.Context, serviceID, workerID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND worker_id = ?", serviceID, workerID).
		Delete(&serviceModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
