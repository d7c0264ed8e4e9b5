package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campdir/campdir-api/internal/apperr"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/repository"
	"github.com/google/uuid"
)

// ReviewStore is the persistence surface the review service uses.
type ReviewStore interface {
	Create(ctx context.Context, rev *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	List(ctx context.Context, bootcampID string) ([]model.Review, error)
	Update(ctx context.Context, rev *model.Review) error
	Delete(ctx context.Context, id string) error
	AverageRating(ctx context.Context, bootcampID string) (*float64, error)
}

// RatingSink receives recomputed bootcamp rating aggregates.
type RatingSink interface {
	SetAverageRating(ctx context.Context, id string, rating *float64) error
}

// ReviewService handles review logic. Every write is followed by an explicit
// recomputation of the bootcamp's average rating; the aggregate is not
// hidden inside a persistence hook.
type ReviewService struct {
	reviews   ReviewStore
	bootcamps BootcampStore
	ratings   RatingSink
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews ReviewStore, bootcamps BootcampStore, ratings RatingSink) *ReviewService {
	return &ReviewService{reviews: reviews, bootcamps: bootcamps, ratings: ratings}
}

// List returns all reviews, or one bootcamp's reviews when bootcampID is
// non-empty.
func (s *ReviewService) List(ctx context.Context, bootcampID string) ([]model.Review, error) {
	if bootcampID != "" {
		if err := checkID(bootcampID); err != nil {
			return nil, err
		}
	}

	reviews, err := s.reviews.List(ctx, bootcampID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return reviews, nil
}

// Get returns one review by ID.
func (s *ReviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	rev, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "No review with the id of %s", id)
		}
		return nil, apperr.Internal(err)
	}
	return rev, nil
}

// Create adds a review for a bootcamp. A user may review a bootcamp once;
// the store's unique index enforces that.
func (s *ReviewService) Create(ctx context.Context, user *model.User, bootcampID string, req model.ReviewRequest) (*model.Review, error) {
	if err := checkID(bootcampID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}

	if _, err := s.bootcamps.GetByID(ctx, bootcampID); err != nil {
		if errors.Is(err, repository.ErrBootcampNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "No bootcamp with the id %s", bootcampID)
		}
		return nil, apperr.Internal(err)
	}

	rev := &model.Review{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Text:       req.Text,
		Rating:     req.Rating,
		BootcampID: bootcampID,
		UserID:     user.ID,
	}

	if err := s.reviews.Create(ctx, rev); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperr.New(apperr.KindDuplicate, "Duplicate field value entered bootcamp,user")
		}
		return nil, apperr.Internal(err)
	}

	s.recomputeAverage(ctx, bootcampID)
	return rev, nil
}

// Update replaces a review's writable fields. Only the author or an admin
// may update.
func (s *ReviewService) Update(ctx context.Context, user *model.User, id string, req model.ReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}

	rev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(user, rev.UserID, "review"); err != nil {
		return nil, err
	}

	rev.Title = req.Title
	rev.Text = req.Text
	rev.Rating = req.Rating

	if err := s.reviews.Update(ctx, rev); err != nil {
		return nil, apperr.Internal(err)
	}

	s.recomputeAverage(ctx, rev.BootcampID)
	return rev, nil
}

// Delete removes a review. Only the author or an admin may delete.
func (s *ReviewService) Delete(ctx context.Context, user *model.User, id string) error {
	rev, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(user, rev.UserID, "review"); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return apperr.Newf(apperr.KindNotFound, "No review with the id of %s", id)
		}
		return apperr.Internal(err)
	}

	s.recomputeAverage(ctx, rev.BootcampID)
	return nil
}

// recomputeAverage recalculates and persists a bootcamp's average rating
// after a review write has committed. A failed recomputation is logged, not
// surfaced; the review write itself already succeeded.
func (s *ReviewService) recomputeAverage(ctx context.Context, bootcampID string) {
	avg, err := s.reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		slog.Error("average rating recomputation failed", "bootcamp", bootcampID, "error", err)
		return
	}
	if err := s.ratings.SetAverageRating(ctx, bootcampID, avg); err != nil {
		slog.Error("average rating persist failed", "bootcamp", bootcampID, "error", err)
	}
}
