package categories

import (
	"context"
	"fmt"

	"github.com/shopcartlabs/shopcart-backend/internal/validation"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/slug"
)

// Service exposes category lifecycle operations.
type Service interface {
	Create(ctx context.Context, payload Payload) (*models.Category, error)
	Update(ctx context.Context, id uint, payload Payload) (*models.Category, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (*models.Category, error)
	List(ctx context.Context, query ListQuery) ([]models.Category, int64, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) (*models.Category, error)
}

type categoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	Save(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.Category, error)
	List(ctx context.Context, query ListQuery) ([]models.Category, int64, error)
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

type service struct {
	repo categoryStore
}

// NewService constructs a category service instance.
func NewService(repo categoryStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, payload Payload) (*models.Category, error) {
	if err := validation.Apply(validation.OpCreate, &payload, payload.crossChecks()...); err != nil {
		return nil, err
	}

	// An explicit slug is stored verbatim; derivation only fills the gap.
	category := &models.Category{
		Name:     *payload.Name,
		Slug:     slug.Derive(*payload.Name),
		IsActive: true,
	}
	if payload.Slug != nil {
		category.Slug = *payload.Slug
	}
	if payload.Description != nil {
		category.Description = *payload.Description
	}
	if payload.IsActive != nil {
		category.IsActive = *payload.IsActive
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name or slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert category")
	}
	return category, nil
}

func (s *service) Update(ctx context.Context, id uint, payload Payload) (*models.Category, error) {
	if err := validation.Apply(validation.OpUpdate, &payload, payload.crossChecks()...); err != nil {
		return nil, err
	}

	category, err := s.load(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil && *payload.Name != category.Name {
		category.Name = *payload.Name
		if payload.Slug == nil {
			category.Slug = slug.Derive(*payload.Name)
		}
	}
	if payload.Slug != nil {
		category.Slug = *payload.Slug
	}
	if payload.Description != nil {
		category.Description = *payload.Description
	}
	if payload.IsActive != nil {
		category.IsActive = *payload.IsActive
	}

	if err := s.repo.Save(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name or slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return category, nil
}

func (s *service) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Category, error) {
	return s.load(ctx, id, includeDeleted)
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Category, int64, error) {
	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, total, nil
}

// Delete soft-deletes the category. Deleting an already-deleted
// category succeeds without touching the row.
func (s *service) Delete(ctx context.Context, id uint) error {
	category, err := s.load(ctx, id, true)
	if err != nil {
		return err
	}
	if category.DeletedAt.Valid {
		return nil
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) Restore(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !category.DeletedAt.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeState, "category is not deleted")
	}
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore category")
	}
	return s.load(ctx, id, false)
}

func (s *service) load(ctx context.Context, id uint, includeDeleted bool) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id, includeDeleted)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}
