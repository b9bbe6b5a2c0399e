package rating

import "homeservice/internal/domain"

// SubmitRatingRequest carries the raw rating value so the service can
// distinguish a missing value from a non-numeric one and report each
// with its own message.
type SubmitRatingRequest struct {
	Rating any    `json:"rating"`
	Review string `json:"review"`
}

// Summary is returned after every submission: the recomputed aggregate
// plus the full current review list for the worker.
type Summary struct {
	AverageRating float64              `json:"average_rating"`
	TotalRatings  int64                `json:"total_ratings"`
	Reviews       []domain.ReviewEntry `json:"reviews"`
}
