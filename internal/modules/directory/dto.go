package directory

import "homeservice/internal/domain"

// WorkerSummary is the list-view projection: profile plus catalog plus
// rating aggregate.
type WorkerSummary struct {
	domain.Worker
	Services      []domain.Service `json:"services"`
	AverageRating float64          `json:"average_rating"`
	TotalRatings  int64            `json:"total_ratings"`
}

// WorkerDetail adds the individual reviews, newest first.
type WorkerDetail struct {
	WorkerSummary
	Reviews []domain.ReviewEntry `json:"reviews"`
}
