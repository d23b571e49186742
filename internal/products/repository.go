package products

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

// Repository provides product persistence on top of gorm.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByID loads one product with its category preloaded.
func (r *Repository) FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.Product, error) {
	query := r.db.WithContext(ctx).Preload("Category")
	if includeDeleted {
		query = query.Unscoped()
	}
	var product models.Product
	if err := query.First(&product, "products.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindCategory loads the referenced category regardless of active flag
// so the service can distinguish missing from inactive.
func (r *Repository) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "categories.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns one page of products plus the total row count for the
// same conditions.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.Product, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.Product{})
	if query.Params.IncludeDeleted {
		qb = qb.Unscoped()
	}
	if active := query.Params.ActiveFilter(); active != nil {
		qb = qb.Where("products.is_active = ?", *active)
	}

	filters := query.Filters
	if filters.CategoryID != nil {
		qb = qb.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.InStock != nil {
		qb = qb.Where("products.in_stock = ?", *filters.InStock)
	}
	if filters.UnitType != nil {
		qb = qb.Where("products.unit_type = ?", *filters.UnitType)
	}
	if filters.Brand != "" {
		qb = qb.Where("LOWER(products.brand) = ?", strings.ToLower(filters.Brand))
	}
	if filters.MinPrice != nil {
		qb = qb.Where("products.price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("products.price <= ?", filters.MaxPrice)
	}

	if clause, args := query.Params.SearchClause(searchColumns); clause != "" {
		qb = qb.Where(clause, args...)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := qb.
		Preload("Category").
		Order(query.Params.OrderClause(SortableColumns)).
		Offset(query.Params.Offset()).
		Limit(query.Params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SoftDelete stamps deleted_at on the row.
func (r *Repository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// Restore clears deleted_at so the row rejoins the default scope.
func (r *Repository) Restore(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("deleted_at", nil).
		Error
}
