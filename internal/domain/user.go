package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleWorker Role = "worker"
)

// ParseRole normalizes a raw role string into the closed Role set.
// All case normalization happens here, at the boundary; nothing else
// in the codebase compares role strings.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, true
	case "worker":
		return RoleWorker, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// Actor is the authenticated identity attached to every request.
type Actor struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
