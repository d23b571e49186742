package admins

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/internal/validation"
	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	"github.com/shopcartlabs/shopcart-backend/pkg/enums"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/security"
)

// Service exposes admin lifecycle operations over the composite
// User+AdminProfile record.
type Service interface {
	Create(ctx context.Context, payload Payload) (*models.AdminProfile, error)
	Update(ctx context.Context, id uint, payload Payload) (*models.AdminProfile, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (*models.AdminProfile, error)
	List(ctx context.Context, query ListQuery) ([]models.AdminProfile, int64, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) (*models.AdminProfile, error)
}

// txRunner is the slice of db.Client the service needs.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        *Repository
	tx          txRunner
	passwordCfg config.PasswordConfig
}

// NewService constructs an admin service instance.
func NewService(repo *Repository, tx txRunner, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, passwordCfg: passwordCfg}, nil
}

// Create writes the user and profile rows inside one transaction so a
// profile failure cannot strand a credential-bearing user row.
func (s *service) Create(ctx context.Context, payload Payload) (*models.AdminProfile, error) {
	if err := validation.Apply(validation.OpCreate, &payload); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(*payload.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        normalizeEmail(*payload.Email),
		PasswordHash: hash,
		AccountType:  enums.AccountTypeAdmin,
		AuthProvider: enums.AuthProviderLocal,
		IsActive:     true,
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	profile := &models.AdminProfile{
		FirstName: *payload.FirstName,
		LastName:  *payload.LastName,
	}
	applyProfilePayload(profile, payload)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateUser(ctx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		return repo.CreateProfile(ctx, profile)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin")
	}

	profile.User = user
	return profile, nil
}

func (s *service) Update(ctx context.Context, id uint, payload Payload) (*models.AdminProfile, error) {
	if err := validation.Apply(validation.OpUpdate, &payload); err != nil {
		return nil, err
	}

	profile, err := s.load(ctx, id, false)
	if err != nil {
		return nil, err
	}
	user := profile.User

	if payload.Email != nil {
		user.Email = normalizeEmail(*payload.Email)
	}
	if payload.Password != nil {
		hash, err := security.HashPassword(*payload.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		now := time.Now()
		user.PasswordHash = hash
		user.LastPasswordChange = &now
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if payload.FirstName != nil {
		profile.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		profile.LastName = *payload.LastName
	}
	applyProfilePayload(profile, payload)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.SaveUser(ctx, user); err != nil {
			return err
		}
		saved := *profile
		saved.User = nil
		return repo.SaveProfile(ctx, &saved)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update admin")
	}
	return profile, nil
}

func (s *service) Get(ctx context.Context, id uint, includeDeleted bool) (*models.AdminProfile, error) {
	return s.load(ctx, id, includeDeleted)
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.AdminProfile, int64, error) {
	rows, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
	}
	return rows, total, nil
}

// Delete soft-deletes both halves together. Deleting an already-deleted
// admin succeeds without touching the rows.
func (s *service) Delete(ctx context.Context, id uint) error {
	profile, err := s.load(ctx, id, true)
	if err != nil {
		return err
	}
	if profile.DeletedAt.Valid {
		return nil
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).SoftDelete(ctx, profile)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete admin")
	}
	return nil
}

func (s *service) Restore(ctx context.Context, id uint) (*models.AdminProfile, error) {
	profile, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !profile.DeletedAt.Valid {
		return nil, pkgerrors.New(pkgerrors.CodeState, "admin is not deleted")
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Restore(ctx, profile)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore admin")
	}
	return s.load(ctx, id, false)
}

func (s *service) load(ctx context.Context, id uint, includeDeleted bool) (*models.AdminProfile, error) {
	profile, err := s.repo.FindByID(ctx, id, includeDeleted)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}
	return profile, nil
}

func applyProfilePayload(profile *models.AdminProfile, payload Payload) {
	if payload.PhoneNumber != nil {
		profile.PhoneNumber = *payload.PhoneNumber
	}
	if payload.Address != nil {
		profile.Address = *payload.Address
	}
	if payload.City != nil {
		profile.City = *payload.City
	}
	if payload.Bio != nil {
		profile.Bio = *payload.Bio
	}
	if payload.ProfilePicture != nil {
		profile.ProfilePicture = *payload.ProfilePicture
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
