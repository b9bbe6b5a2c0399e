package domain

import "time"

// Worker is a service-provider profile. OwnerID is nullable because
// legacy records were created by hand before workers had accounts.
type Worker struct {
	ID         int64     `json:"id"`
	OwnerID    *int64    `json:"owner_id,omitempty"`
	Name       string    `json:"name" validate:"required"`
	Phone      string    `json:"phone,omitempty" validate:"omitempty,e164"`
	Profession string    `json:"profession,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Location   string    `json:"location,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Service is one catalog entry offered by a worker. Bookings reference
// it by id; price and description are not snapshotted at booking time.
type Service struct {
	ID          int64     `json:"id"`
	WorkerID    int64     `json:"worker_id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
}
