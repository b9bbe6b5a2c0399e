package repository

import (
	"context"
	"time"

	"homeservice/internal/domain"

	"gorm.io/gorm"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

type workerModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	OwnerID    *int64    `gorm:"column:owner_id;index"`
	Name       string    `gorm:"column:name"`
	Phone      *string   `gorm:"column:phone"`
	Profession *string   `gorm:"column:profession"`
	Experience *string   `gorm:"column:experience"`
	Location   *string   `gorm:"column:location"`
	Bio        *string   `gorm:"column:bio"`
	IsActive   bool      `gorm:"column:is_active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (workerModel) TableName() string { return "workers" }

func strValue(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainWorker(m workerModel) *domain.Worker {
	return &domain.Worker{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		Name:       m.Name,
		Phone:      strValue(m.Phone),
		Profession: strValue(m.Profession),
		Experience: strValue(m.Experience),
		Location:   strValue(m.Location),
		Bio:        strValue(m.Bio),
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toWorkerModel(w *domain.Worker) workerModel {
	return workerModel{
		ID:         w.ID,
		OwnerID:    w.OwnerID,
		Name:       w.Name,
		Phone:      strPtr(w.Phone),
		Profession: strPtr(w.Profession),
		Experience: strPtr(w.Experience),
		Location:   strPtr(w.Location),
		Bio:        strPtr(w.Bio),
		IsActive:   w.IsActive,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func (r *WorkerRepository) Create(ctx context.Context, w *domain.Worker) error {
	m := toWorkerModel(w)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*w = *toDomainWorker(m)
	return nil
}

func (r *WorkerRepository) Update(ctx context.Context, w *domain.Worker) error {
	m := toWorkerModel(w)
	tx := r.db.WithContext(ctx).
		Model(&workerModel{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"name":       m.Name,
			"phone":      m.Phone,
			"profession": m.Profession,
			"experience": m.Experience,
			"location":   m.Location,
			"bio":        m.Bio,
			"is_active":  m.IsActive,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WorkerRepository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	var m workerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainWorker(m), nil
}

func (r *WorkerRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Worker, error) {
	var m workerModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainWorker(m), nil
}

// List returns every worker profile, active and inactive alike; the
// directory view does not filter on is_active.
func (r *WorkerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	var rows []workerModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Worker, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainWorker(m))
	}
	return out, nil
}
