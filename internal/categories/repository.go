package categories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
)

// Repository provides category persistence on top of gorm.
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

func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *Repository) Save(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// FindByID loads one category. With includeDeleted the soft-delete
// scope is lifted so trashed rows are visible too.
func (r *Repository) FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.Category, error) {
	query := r.db.WithContext(ctx)
	if includeDeleted {
		query = query.Unscoped()
	}
	var category models.Category
	if err := query.First(&category, "categories.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns one page of categories plus the total row count for the
// same conditions.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.Category, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.Category{})
	if query.Params.IncludeDeleted {
		qb = qb.Unscoped()
	}
	if active := query.Params.ActiveFilter(); active != nil {
		qb = qb.Where("categories.is_active = ?", *active)
	}
	if clause, args := query.Params.SearchClause(searchColumns); clause != "" {
		qb = qb.Where(clause, args...)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Category
	err := qb.
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
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// Restore clears deleted_at so the row rejoins the default scope.
func (r *Repository) Restore(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Category{}).
		Where("id = ?", id).
		Update("deleted_at", nil).
		Error
}
