package service

import (
	"context"
	"errors"

	"github.com/campdir/campdir-api/internal/apperr"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/repository"
	"github.com/google/uuid"
)

// CourseStore is the persistence surface the course service uses.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, bootcampID string) ([]model.Course, error)
}

// CourseService handles course directory logic.
type CourseService struct {
	courses   CourseStore
	bootcamps BootcampStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, bootcamps BootcampStore) *CourseService {
	return &CourseService{courses: courses, bootcamps: bootcamps}
}

// List returns all courses, or only a bootcamp's courses when bootcampID is
// non-empty. Each course embeds its bootcamp summary.
func (s *CourseService) List(ctx context.Context, bootcampID string) ([]model.Course, error) {
	if bootcampID != "" {
		if err := checkID(bootcampID); err != nil {
			return nil, err
		}
	}

	courses, err := s.courses.List(ctx, bootcampID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return courses, nil
}

// Get returns one course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*model.Course, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "No course with the id of %s", id)
		}
		return nil, apperr.Internal(err)
	}
	return c, nil
}

// Create adds a course to a bootcamp. The bootcamp must exist.
func (s *CourseService) Create(ctx context.Context, user *model.User, bootcampID string, req model.CourseRequest) (*model.Course, error) {
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

	c := &model.Course{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Weeks:        req.Weeks,
		Tuition:      req.Tuition,
		MinimumSkill: req.MinimumSkill,
		Bootcamp:     model.BootcampSummary{ID: bootcampID},
		UserID:       user.ID,
	}

	if err := s.courses.Create(ctx, c); err != nil {
		return nil, apperr.Internal(err)
	}

	// Re-read so the response carries the populated bootcamp summary.
	return s.courses.GetByID(ctx, c.ID)
}
