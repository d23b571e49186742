package products

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shopcartlabs/shopcart-backend/internal/validation"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	"github.com/shopcartlabs/shopcart-backend/pkg/enums"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/slug"
)

// Service exposes product lifecycle operations.
type Service interface {
	Create(ctx context.Context, payload Payload) (*models.Product, error)
	Update(ctx context.Context, id uint, payload Payload) (*models.Product, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (*models.Product, error)
	List(ctx context.Context, query ListQuery) ([]models.Product, int64, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) (*models.Product, error)
}

type productStore interface {
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.Product, error)
	FindCategory(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context, query ListQuery) ([]models.Product, int64, error)
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

type service struct {
	repo productStore
}

// NewService constructs a product service instance.
func NewService(repo productStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, payload Payload) (*models.Product, error) {
	if err := validation.Apply(validation.OpCreate, &payload, payload.crossChecks()...); err != nil {
		return nil, err
	}
	if err := s.ensureActiveCategory(ctx, *payload.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:        *payload.CategoryID,
		Name:              *payload.Name,
		Slug:              slug.Derive(*payload.Name),
		Description:       *payload.Description,
		Price:             *payload.Price,
		Quantity:          decimal.Zero,
		UnitType:          enums.UnitPiece,
		LowStockThreshold: 10,
		IsActive:          true,
	}
	// An explicit slug is stored verbatim; derivation only fills the gap.
	if payload.Slug != nil {
		product.Slug = *payload.Slug
	}
	applyPayload(product, payload)

	if err := checkStoredBounds(product); err != nil {
		return nil, err
	}
	product.InStock = product.Quantity.IsPositive()

	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product name or slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id uint, payload Payload) (*models.Product, error) {
	if err := validation.Apply(validation.OpUpdate, &payload, payload.crossChecks()...); err != nil {
		return nil, err
	}

	product, err := s.load(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if payload.CategoryID != nil && *payload.CategoryID != product.CategoryID {
		if err := s.ensureActiveCategory(ctx, *payload.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *payload.CategoryID
		product.Category = nil
	}
	if payload.Name != nil && *payload.Name != product.Name {
		product.Name = *payload.Name
		if payload.Slug == nil {
			product.Slug = slug.Derive(*payload.Name)
		}
	}
	if payload.Slug != nil {
		product.Slug = *payload.Slug
	}
	applyPayload(product, payload)

	// Range invariants run against the merged record, not just the
	// payload, so a partial update cannot leave quantity outside the
	// stored bounds or the stored dates out of order.
	if err := checkStoredBounds(product); err != nil {
		return nil, err
	}
	product.InStock = product.Quantity.IsPositive()

	if err := s.repo.Save(ctx, product); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product name or slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, id uint, includeDeleted bool) (*models.Product, error) {
	return s.load(ctx, id, includeDeleted)
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Product, int64, error) {
	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, total, nil
}

// Delete soft-deletes the product. Deleting an already-deleted product
// succeeds without touching the row.
func (s *service) Delete(ctx context.Context, id uint) error {
	product, err := s.load(ctx, id, true)
	if err != nil {
		return err
	}
	if product.DeletedAt.Valid {
		return nil
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) Restore(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !product.DeletedAt.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeState, "product is not deleted")
	}
	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore product")
	}
	return s.load(ctx, id, false)
}

func (s *service) load(ctx context.Context, id uint, includeDeleted bool) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id, includeDeleted)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ensureActiveCategory(ctx context.Context, categoryID uint) error {
	category, err := s.repo.FindCategory(ctx, categoryID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeReference, "categoryId does not reference an existing category")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if !category.IsActive {
		return pkgerrors.New(pkgerrors.CodeReference, "categoryId references an inactive category")
	}
	return nil
}

// applyPayload copies the simple present fields onto the record. Name,
// category and derived fields are handled by the callers.
func applyPayload(product *models.Product, payload Payload) {
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	if payload.ShortDescription != nil {
		product.ShortDescription = *payload.ShortDescription
	}
	if payload.Price != nil {
		product.Price = *payload.Price
	}
	if payload.Quantity != nil {
		product.Quantity = *payload.Quantity
	}
	if payload.UnitType != nil {
		// Already validated by the unit cross check.
		unit, err := enums.ParseUnitType(*payload.UnitType)
		if err == nil {
			product.UnitType = unit
		}
	}
	if payload.MinQuantity != nil {
		product.MinQuantity = payload.MinQuantity
	}
	if payload.MaxQuantity != nil {
		product.MaxQuantity = payload.MaxQuantity
	}
	if payload.ManufactureDate != nil {
		product.ManufactureDate = payload.ManufactureDate
	}
	if payload.ExpiryDate != nil {
		product.ExpiryDate = payload.ExpiryDate
	}
	if payload.Barcode != nil {
		product.Barcode = *payload.Barcode
	}
	if payload.LowStockThreshold != nil {
		product.LowStockThreshold = *payload.LowStockThreshold
	}
	if payload.Weight != nil {
		product.Weight = payload.Weight
	}
	if payload.Dimensions != nil {
		product.Dimensions = *payload.Dimensions
	}
	if payload.Brand != nil {
		product.Brand = *payload.Brand
	}
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}
}

// checkStoredBounds enforces the quantity window and the date ordering
// on the record about to be committed.
func checkStoredBounds(product *models.Product) error {
	if product.MinQuantity != nil && product.MaxQuantity != nil &&
		product.MinQuantity.GreaterThan(*product.MaxQuantity) {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails([]string{"minQuantity: must not exceed maxQuantity"})
	}
	if product.MinQuantity != nil && product.Quantity.LessThan(*product.MinQuantity) {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails([]string{"quantity: must not be below minQuantity"})
	}
	if product.MaxQuantity != nil && product.Quantity.GreaterThan(*product.MaxQuantity) {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails([]string{"quantity: must not exceed maxQuantity"})
	}
	if product.ManufactureDate != nil && product.ExpiryDate != nil &&
		!product.ManufactureDate.Before(*product.ExpiryDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails([]string{"manufactureDate: must be before expiryDate"})
	}
	return nil
}
