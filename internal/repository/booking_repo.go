package repository

import (
	"context"
	"errors"
	"time"

	"homeservice/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTerminalStatus is returned when a transition is attempted on a
// booking whose status permits no further transitions.
var ErrTerminalStatus = errors.New("booking status is terminal")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	WorkerID  int64     `gorm:"column:worker_id;index"`
	ServiceID int64     `gorm:"column:service_id"`
	Date      string    `gorm:"column:date"`
	Time      string    `gorm:"column:time"`
	Notes     *string   `gorm:"column:notes"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		UserID:    m.UserID,
		WorkerID:  m.WorkerID,
		ServiceID: m.ServiceID,
		Date:      m.Date,
		Time:      m.Time,
		Notes:     strValue(m.Notes),
		Status:    domain.BookingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		UserID:    b.UserID,
		WorkerID:  b.WorkerID,
		ServiceID: b.ServiceID,
		Date:      b.Date,
		Time:      b.Time,
		Notes:     strPtr(b.Notes),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BookingDetails is the flattened read view joined across bookings,
// workers, services and users for listing endpoints.
type BookingDetails struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	WorkerID   int64  `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	Profession string `json:"profession,omitempty"`

	ServiceID    int64   `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	ServicePrice float64 `json:"service_price"`

	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type bookingDetailsRow struct {
	ID           int64
	Status       string
	Date         string
	Time         string
	Notes        *string
	CreatedAt    time.Time
	WorkerID     int64
	WorkerName   string
	Profession   *string
	ServiceID    int64
	ServiceName  *string
	ServicePrice *float64
	UserID       int64
	Username     string
}

const bookingDetailsQuery = `
SELECT b.id, b.status, b.date, b.time, b.notes, b.created_at,
       b.worker_id, w.name AS worker_name, w.profession,
       b.service_id, s.name AS service_name, s.price AS service_price,
       b.user_id, u.username
FROM bookings b
JOIN workers w ON w.id = b.worker_id
JOIN users u ON u.id = b.user_id
LEFT JOIN services s ON s.id = b.service_id
`

func toBookingDetails(r bookingDetailsRow) BookingDetails {
	d := BookingDetails{
		ID:         r.ID,
		Status:     r.Status,
		Date:       r.Date,
		Time:       r.Time,
		Notes:      strValue(r.Notes),
		CreatedAt:  r.CreatedAt,
		WorkerID:   r.WorkerID,
		WorkerName: r.WorkerName,
		Profession: strValue(r.Profession),
		ServiceID:  r.ServiceID,
		UserID:     r.UserID,
		Username:   r.Username,
	}
	if r.ServiceName != nil {
		d.ServiceName = *r.ServiceName
	}
	if r.ServicePrice != nil {
		d.ServicePrice = *r.ServicePrice
	}
	return d
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// TransitionOwnedByWorker applies a worker-side status change inside a
// single transaction. The booking row is locked and resolved scoped to
// workers owned by ownerUserID, so cross-worker ids surface as
// gorm.ErrRecordNotFound rather than a permission error. Transitions
// out of a terminal status fail with ErrTerminalStatus.
func (r *BookingRepository) TransitionOwnedByWorker(ctx context.Context, bookingID, ownerUserID int64, status domain.BookingStatus) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockBooking(tx, "b.id = ? AND w.owner_id = ?", bookingID, ownerUserID)
		if err != nil {
			return err
		}
		if domain.BookingStatus(m.Status).IsTerminal() {
			return ErrTerminalStatus
		}
		if err := applyStatus(tx, m, status); err != nil {
			return err
		}
		out = toDomainBooking(*m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CancelOwnedByUser cancels the caller's own booking under the same
// per-row lock. Allowed only while the booking is not yet terminal.
func (r *BookingRepository) CancelOwnedByUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockBooking(tx, "b.id = ? AND b.user_id = ?", bookingID, userID)
		if err != nil {
			return err
		}
		if domain.BookingStatus(m.Status).IsTerminal() {
			return ErrTerminalStatus
		}
		if err := applyStatus(tx, m, domain.BookingCanceled); err != nil {
			return err
		}
		out = toDomainBooking(*m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// lockBooking resolves one booking row under FOR UPDATE (Postgres only;
// SQLite serializes writers on its own) joined against workers so the
// scope condition can reference w.owner_id.
func lockBooking(tx *gorm.DB, cond string, args ...any) (*bookingModel, error) {
	q := tx.Table("bookings AS b").
		Select("b.*").
		Joins("JOIN workers w ON w.id = b.worker_id").
		Where(cond, args...)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "b"}})
	}

	var m bookingModel
	if err := q.Scan(&m).Error; err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func applyStatus(tx *gorm.DB, m *bookingModel, status domain.BookingStatus) error {
	now := time.Now().UTC()
	res := tx.Model(&bookingModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{"status": string(status), "updated_at": now})
	if res.Error != nil {
		return res.Error
	}
	m.Status = string(status)
	m.UpdatedAt = now
	return nil
}

// ListByUser returns the caller's bookings, most recent first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]BookingDetails, error) {
	return r.listDetails(ctx, "WHERE b.user_id = ?", userID)
}

// ListByWorkerOwner returns bookings assigned to the worker profile
// owned by ownerUserID, most recent first.
func (r *BookingRepository) ListByWorkerOwner(ctx context.Context, ownerUserID int64) ([]BookingDetails, error) {
	return r.listDetails(ctx, "WHERE w.owner_id = ?", ownerUserID)
}

func (r *BookingRepository) listDetails(ctx context.Context, where string, args ...any) ([]BookingDetails, error) {
	var rows []bookingDetailsRow
	q := bookingDetailsQuery + where + "\nORDER BY b.created_at DESC, b.id DESC"
	tx := r.db.WithContext(ctx).Raw(q, args...).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]BookingDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBookingDetails(row))
	}
	return out, nil
}
