package admins

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	"github.com/shopcartlabs/shopcart-backend/pkg/enums"
)

// Repository provides persistence for the composite admin record.
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

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) CreateProfile(ctx context.Context, profile *models.AdminProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *Repository) SaveUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *Repository) SaveProfile(ctx context.Context, profile *models.AdminProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// FindByID loads the profile and its user. The admin id is the profile
// id; with includeDeleted both halves come back even when trashed.
func (r *Repository) FindByID(ctx context.Context, id uint, includeDeleted bool) (*models.AdminProfile, error) {
	query := r.db.WithContext(ctx)
	if includeDeleted {
		query = query.Unscoped().Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
	} else {
		query = query.Preload("User")
	}

	var profile models.AdminProfile
	if err := query.First(&profile, "admin_profiles.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns one page of admins plus the total row count. Search and
// email sorting need the users join.
func (r *Repository) List(ctx context.Context, query ListQuery) ([]models.AdminProfile, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.AdminProfile{})
	if query.Params.IncludeDeleted {
		qb = qb.Unscoped().
			Joins("JOIN users ON users.id = admin_profiles.user_id").
			Preload("User", func(db *gorm.DB) *gorm.DB {
				return db.Unscoped()
			})
	} else {
		qb = qb.
			Joins("JOIN users ON users.id = admin_profiles.user_id AND users.deleted_at IS NULL").
			Preload("User")
	}

	qb = qb.Where("users.account_type = ?", enums.AccountTypeAdmin)

	if query.Params.IsActive != nil {
		qb = qb.Where("users.is_active = ?", *query.Params.IsActive)
	}
	if query.Filters.City != "" {
		qb = qb.Where("LOWER(admin_profiles.city) = ?", strings.ToLower(query.Filters.City))
	}
	if clause, args := query.Params.SearchClause(searchColumns); clause != "" {
		qb = qb.Where(clause, args...)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AdminProfile
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

// SoftDelete stamps deleted_at on both halves.
func (r *Repository) SoftDelete(ctx context.Context, profile *models.AdminProfile) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.AdminProfile{}, "id = ?", profile.ID).
		Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&models.User{}, "id = ?", profile.UserID).
		Error
}

// Restore clears deleted_at on both halves.
func (r *Repository) Restore(ctx context.Context, profile *models.AdminProfile) error {
	if err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.AdminProfile{}).
		Where("id = ?", profile.ID).
		Update("deleted_at", nil).
		Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Unscoped().
		Model(&models.User{}).
		Where("id = ?", profile.UserID).
		Update("deleted_at", nil).
		Error
}
