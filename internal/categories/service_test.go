package categories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
)

type stubStore struct {
	categories map[uint]*models.Category
	createErr  error
	saveErr    error
	nextID     uint
}

func newStubStore() *stubStore {
	return &stubStore{categories: map[uint]*models.Category{}, nextID: 1}
}

func (s *stubStore) Create(_ context.Context, category *models.Category) error {
	if s.createErr != nil {
		return s.createErr
	}
	category.ID = s.nextID
	s.nextID++
	s.categories[category.ID] = category
	return nil
}

func (s *stubStore) Save(_ context.Context, category *models.Category) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.categories[category.ID] = category
	return nil
}

func (s *stubStore) FindByID(_ context.Context, id uint, includeDeleted bool) (*models.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if category.DeletedAt.Valid && !includeDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (s *stubStore) List(_ context.Context, _ ListQuery) ([]models.Category, int64, error) {
	return nil, 0, nil
}

func (s *stubStore) SoftDelete(_ context.Context, id uint) error {
	s.categories[id].DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (s *stubStore) Restore(_ context.Context, id uint) error {
	s.categories[id].DeletedAt = gorm.DeletedAt{}
	return nil
}

func str(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

func newTestService(t *testing.T, store *stubStore) Service {
	t.Helper()
	svc, err := NewService(store)
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestCreateDerivesSlugAndDefaults(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	category, err := svc.Create(context.Background(), Payload{Name: str("Fresh Vegetables")})
	if err != nil {
		t.Fatal(err)
	}
	if category.Slug != "fresh-vegetables" {
		t.Fatalf("expected derived slug, got %q", category.Slug)
	}
	if !category.IsActive {
		t.Fatal("expected new category to default to active")
	}
}

func TestCreateStoresExplicitSlug(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	category, err := svc.Create(context.Background(), Payload{
		Name: str("Fresh Vegetables"),
		Slug: str("veg-aisle"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if category.Slug != "veg-aisle" {
		t.Fatalf("expected explicit slug stored verbatim, got %q", category.Slug)
	}
}

func TestCreateRejectsMalformedSlug(t *testing.T) {
	svc := newTestService(t, newStubStore())

	_, err := svc.Create(context.Background(), Payload{
		Name: str("Fresh Vegetables"),
		Slug: str("Fresh Veg!"),
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateMissingName(t *testing.T) {
	svc := newTestService(t, newStubStore())

	_, err := svc.Create(context.Background(), Payload{})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateDuplicateNameMapsToConflict(t *testing.T) {
	store := newStubStore()
	store.createErr = errors.New(`duplicate key value violates unique constraint "idx_categories_name"`)
	svc := newTestService(t, store)

	_, err := svc.Create(context.Background(), Payload{Name: str("Fresh Vegetables")})
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateRederivesSlugOnRename(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.Create(context.Background(), Payload{Name: str("Fresh Vegetables")})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), created.ID, Payload{Name: str("Frozen Goods")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Slug != "frozen-goods" {
		t.Fatalf("expected re-derived slug, got %q", updated.Slug)
	}
}

func TestUpdateRenameKeepsExplicitSlug(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.Create(context.Background(), Payload{Name: str("Fresh Vegetables")})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), created.ID, Payload{
		Name: str("Frozen Goods"),
		Slug: str("freezer-aisle"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Slug != "freezer-aisle" {
		t.Fatalf("expected explicit slug to win over derivation, got %q", updated.Slug)
	}
}

func TestUpdatePartialPayloadKeepsOtherFields(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.Create(context.Background(), Payload{
		Name:        str("Fresh Vegetables"),
		Description: str("greens and roots"),
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(context.Background(), created.ID, Payload{IsActive: boolPtr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Fresh Vegetables" || updated.Description != "greens and roots" {
		t.Fatal("expected untouched fields to survive a partial update")
	}
	if updated.IsActive {
		t.Fatal("expected isActive to be updated")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	svc := newTestService(t, newStubStore())

	_, err := svc.Update(context.Background(), 99, Payload{Name: str("x")})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.Create(context.Background(), Payload{Name: str("Fresh Vegetables")})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("expected repeat delete to be a no-op, got %v", err)
	}
}

func TestGetDeletedRequiresIncludeDeleted(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.Create(context.Background(), Payload{Name: str("Fresh Vegetables")})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Get(context.Background(), created.ID, false)
	expectCode(t, err, pkgerrors.CodeNotFound)

	found, err := svc.Get(context.Background(), created.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if !found.DeletedAt.Valid {
		t.Fatal("expected deletedAt to be set")
	}
}

func TestRestoreRequiresDeletedState(t *testing.T) {
	store := newStubStore()
	svc := newTestService(t, store)

	created, err := svc.Create(context.Background(), Payload{Name: str("Fresh Vegetables")})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Restore(context.Background(), created.ID)
	expectCode(t, err, pkgerrors.CodeState)

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatal(err)
	}
	restored, err := svc.Restore(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.DeletedAt.Valid {
		t.Fatal("expected deletedAt cleared after restore")
	}
}
