package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campdir/campdir-api/internal/model"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user already reviewed this bootcamp")
)

// ReviewRepository handles review persistence and the rating aggregate.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, title, text, rating, bootcamp_id, user_id, created_at`

// Create inserts a new review. The unique (bootcamp_id, user_id) index
// enforces one review per user per bootcamp.
func (r *ReviewRepository) Create(ctx context.Context, rev *model.Review) error {
	query := `INSERT INTO reviews (id, title, text, rating, bootcamp_id, user_id) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rev.ID, rev.Title, rev.Text, rev.Rating, rev.BootcampID, rev.UserID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

// GetByID retrieves a review by ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`

	rev := &model.Review{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.Title, &rev.Text, &rev.Rating, &rev.BootcampID, &rev.UserID, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return rev, nil
}

// List retrieves all reviews, optionally filtered to one bootcamp.
func (r *ReviewRepository) List(ctx context.Context, bootcampID string) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	args := []any{}
	if bootcampID != "" {
		query += ` WHERE bootcamp_id = ?`
		args = append(args, bootcampID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.Title, &rev.Text, &rev.Rating,
			&rev.BootcampID, &rev.UserID, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}

	return reviews, rows.Err()
}

// Update replaces the writable fields of a review.
func (r *ReviewRepository) Update(ctx context.Context, rev *model.Review) error {
	query := `UPDATE reviews SET title = ?, text = ?, rating = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, rev.Title, rev.Text, rev.Rating, rev.ID)
	return err
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// AverageRating computes the mean rating across a bootcamp's reviews.
// Returns nil when the bootcamp has no reviews.
func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (*float64, error) {
	query := `SELECT AVG(rating) FROM reviews WHERE bootcamp_id = ?`

	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, bootcampID).Scan(&avg); err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
