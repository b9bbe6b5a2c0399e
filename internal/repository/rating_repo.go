package repository

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"homeservice/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

type ratingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	WorkerID  int64     `gorm:"column:worker_id;uniqueIndex:idx_rating_worker_user"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_rating_worker_user"`
	Rating    int       `gorm:"column:rating"`
	Review    *string   `gorm:"column:review"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ratingModel) TableName() string { return "ratings" }

func toDomainRating(m ratingModel) *domain.Rating {
	return &domain.Rating{
		ID:        m.ID,
		WorkerID:  m.WorkerID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Review:    strValue(m.Review),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Submit upserts the (worker, user) rating and recomputes the worker's
// aggregate inside one transaction, so the returned summary and review
// list reflect a consistent snapshot even under concurrent submissions.
func (r *RatingRepository) Submit(ctx context.Context, rv *domain.Rating) (*domain.RatingSummary, []domain.ReviewEntry, error) {
	var (
		summary *domain.RatingSummary
		reviews []domain.ReviewEntry
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize submissions per worker so two raters cannot each
		// read a partial aggregate. SQLite has a single writer anyway.
		if tx.Dialector.Name() == "postgres" {
			var ids []int64
			if err := tx.Raw("SELECT id FROM ratings WHERE worker_id = ? FOR UPDATE", rv.WorkerID).Scan(&ids).Error; err != nil {
				return err
			}
		}

		if err := upsertRating(tx, rv); err != nil {
			return err
		}

		s, err := aggregateForWorker(tx, rv.WorkerID)
		if err != nil {
			return err
		}
		list, err := listReviews(tx, rv.WorkerID)
		if err != nil {
			return err
		}
		summary = s
		reviews = list
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return summary, reviews, nil
}

func upsertRating(tx *gorm.DB, rv *domain.Rating) error {
	var existing ratingModel
	res := tx.Where("worker_id = ? AND user_id = ?", rv.WorkerID, rv.UserID).First(&existing)

	switch {
	case res.Error == nil:
		return overwriteRating(tx, &existing, rv)

	case errors.Is(res.Error, gorm.ErrRecordNotFound):
		now := time.Now().UTC()
		m := ratingModel{
			WorkerID:  rv.WorkerID,
			UserID:    rv.UserID,
			Rating:    rv.Rating,
			Review:    strPtr(rv.Review),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&m).Error; err != nil {
			// Lost the insert race against ourselves: the unique
			// (worker_id, user_id) constraint fired, so fall back to
			// the overwrite path.
			if isUniqueViolation(err) {
				if e := tx.Where("worker_id = ? AND user_id = ?", rv.WorkerID, rv.UserID).First(&existing).Error; e != nil {
					return e
				}
				return overwriteRating(tx, &existing, rv)
			}
			return err
		}
		*rv = *toDomainRating(m)
		return nil

	default:
		return res.Error
	}
}

// overwriteRating replaces score and review in place; created_at keeps
// its original value.
func overwriteRating(tx *gorm.DB, existing *ratingModel, rv *domain.Rating) error {
	now := time.Now().UTC()
	res := tx.Model(&ratingModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"rating":     rv.Rating,
			"review":     strPtr(rv.Review),
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	rv.ID = existing.ID
	rv.CreatedAt = existing.CreatedAt
	rv.UpdatedAt = now
	return nil
}

// AggregateForWorker computes the current summary outside any write path.
func (r *RatingRepository) AggregateForWorker(ctx context.Context, workerID int64) (*domain.RatingSummary, error) {
	return aggregateForWorker(r.db.WithContext(ctx), workerID)
}

// ListReviews returns the worker's reviews with rater usernames, newest first.
func (r *RatingRepository) ListReviews(ctx context.Context, workerID int64) ([]domain.ReviewEntry, error) {
	return listReviews(r.db.WithContext(ctx), workerID)
}

func aggregateForWorker(tx *gorm.DB, workerID int64) (*domain.RatingSummary, error) {
	var agg struct {
		Sum   int64
		Count int64
	}
	err := tx.Model(&ratingModel{}).
		Select("COALESCE(SUM(rating), 0) AS sum, COUNT(*) AS count").
		Where("worker_id = ?", workerID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if agg.Count > 0 {
		// Mean rounded half-away-from-zero to one decimal.
		avg = math.Round(float64(agg.Sum)/float64(agg.Count)*10) / 10
	}
	return &domain.RatingSummary{AverageRating: avg, TotalRatings: agg.Count}, nil
}

type reviewRow struct {
	ID        int64
	Rating    int
	Review    *string
	Username  string
	CreatedAt time.Time
}

func listReviews(tx *gorm.DB, workerID int64) ([]domain.ReviewEntry, error) {
	var rows []reviewRow
	q := `
SELECT r.id, r.rating, r.review, u.username, r.created_at
FROM ratings r
JOIN users u ON u.id = r.user_id
WHERE r.worker_id = ?
ORDER BY r.created_at DESC, r.id DESC
`
	if err := tx.Raw(q, workerID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.ReviewEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ReviewEntry{
			ID:        row.ID,
			Rating:    row.Rating,
			Review:    strValue(row.Review),
			Username:  row.Username,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "duplicate key value violates unique constraint") ||
		strings.Contains(s, "23505")
}
