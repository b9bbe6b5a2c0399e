package domain

import "time"

// Rating holds the single score a user has given a worker. The
// (worker_id, user_id) pair is unique; resubmitting overwrites the
// score and review in place while CreatedAt keeps its original value.
type Rating struct {
	ID        int64     `json:"id"`
	WorkerID  int64     `json:"worker_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary is the derived aggregate for one worker.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// ReviewEntry is one rating decorated with the rater's username for
// display in worker detail views.
type ReviewEntry struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
