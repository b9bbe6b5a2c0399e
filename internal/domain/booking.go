package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed" // defined for API compatibility, reachable by no transition
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCompleted BookingStatus = "completed"
	BookingCanceled  BookingStatus = "canceled"
)

// ParseBookingStatus maps a raw status string onto the closed status set.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingAccepted, BookingDeclined, BookingCompleted, BookingCanceled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// IsTerminal reports whether no further transition is permitted.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingDeclined || s == BookingCompleted || s == BookingCanceled
}

type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	WorkerID  int64         `json:"worker_id"`
	ServiceID int64         `json:"service_id"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Notes     string        `json:"notes,omitempty"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	User    *User    `json:"user,omitempty"`
	Worker  *Worker  `json:"worker,omitempty"`
	Service *Service `json:"service,omitempty"`
}
