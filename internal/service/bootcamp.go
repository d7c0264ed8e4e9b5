package service

import (
	"context"
	"errors"

	"github.com/campdir/campdir-api/internal/apperr"
	"github.com/campdir/campdir-api/internal/model"
	"github.com/campdir/campdir-api/internal/repository"
	"github.com/google/uuid"
)

// BootcampStore is the persistence surface the bootcamp service uses.
type BootcampStore interface {
	Create(ctx context.Context, b *model.Bootcamp) error
	GetByID(ctx context.Context, id string) (*model.Bootcamp, error)
	List(ctx context.Context) ([]model.Bootcamp, error)
	Update(ctx context.Context, b *model.Bootcamp) error
	Delete(ctx context.Context, id string) error
}

// BootcampService handles bootcamp directory logic.
type BootcampService struct {
	bootcamps BootcampStore
}

// NewBootcampService creates a new BootcampService.
func NewBootcampService(bootcamps BootcampStore) *BootcampService {
	return &BootcampService{bootcamps: bootcamps}
}

// List returns all bootcamps.
func (s *BootcampService) List(ctx context.Context) ([]model.Bootcamp, error) {
	bootcamps, err := s.bootcamps.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return bootcamps, nil
}

// Get returns one bootcamp by ID.
func (s *BootcampService) Get(ctx context.Context, id string) (*model.Bootcamp, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	b, err := s.bootcamps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBootcampNotFound) {
			return nil, apperr.Newf(apperr.KindNotFound, "No bootcamp with the id %s", id)
		}
		return nil, apperr.Internal(err)
	}
	return b, nil
}

// Create adds a bootcamp owned by the calling user.
func (s *BootcampService) Create(ctx context.Context, user *model.User, req model.BootcampRequest) (*model.Bootcamp, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}

	b := &model.Bootcamp{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		UserID:      user.ID,
	}

	if err := s.bootcamps.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateBootcampName) {
			return nil, apperr.New(apperr.KindDuplicate, "Duplicate field value entered name")
		}
		return nil, apperr.Internal(err)
	}

	created, err := s.bootcamps.GetByID(ctx, b.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return created, nil
}

// Update replaces a bootcamp's writable fields. Only the owner or an admin
// may update.
func (s *BootcampService) Update(ctx context.Context, user *model.User, id string, req model.BootcampRequest) (*model.Bootcamp, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.New(apperr.KindValidation, err.Error())
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(user, b.UserID, "bootcamp"); err != nil {
		return nil, err
	}

	b.Name = req.Name
	b.Description = req.Description
	b.Website = req.Website
	b.Phone = req.Phone
	b.Email = req.Email
	b.Address = req.Address

	if err := s.bootcamps.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateBootcampName) {
			return nil, apperr.New(apperr.KindDuplicate, "Duplicate field value entered name")
		}
		return nil, apperr.Internal(err)
	}
	return b, nil
}

// Delete removes a bootcamp and, via the schema, its courses and reviews.
// Only the owner or an admin may delete.
func (s *BootcampService) Delete(ctx context.Context, user *model.User, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(user, b.UserID, "bootcamp"); err != nil {
		return err
	}

	if err := s.bootcamps.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBootcampNotFound) {
			return apperr.Newf(apperr.KindNotFound, "No bootcamp with the id %s", id)
		}
		return apperr.Internal(err)
	}
	return nil
}

// checkID rejects malformed identifiers before they reach the store. A
// malformed ID can never name a resource, so it reports not-found.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Newf(apperr.KindBadID, "Resource not found with id of %s", id)
	}
	return nil
}

// requireOwnerOrAdmin checks that user owns the resource or holds the admin
// role.
func requireOwnerOrAdmin(user *model.User, ownerID, resource string) error {
	if user.ID != ownerID && user.Role != model.RoleAdmin {
		return apperr.Newf(apperr.KindAuth, "Not authorized to modify this %s", resource)
	}
	return nil
}
