package admins

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/listing"
	"github.com/shopcartlabs/shopcart-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemory:  8 * 1024,
		ArgonTime:    1,
		ArgonThreads: 1,
		SaltLength:   16,
		KeyLength:    32,
	}
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.AdminProfile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(NewRepository(gdb), db.FromGorm(gdb), testPasswordConfig())
	if err != nil {
		t.Fatal(err)
	}
	return svc, gdb
}

func str(v string) *string { return &v }

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

func basePayload() Payload {
	return Payload{
		Email:     str("Admin@Example.com"),
		Password:  str("SuperSecret123!"),
		FirstName: str("Ana"),
		LastName:  str("Moreno"),
	}
}

func TestCreateAdminWritesBothHalves(t *testing.T) {
	svc, gdb := newTestService(t)

	admin, err := svc.Create(context.Background(), basePayload())
	if err != nil {
		t.Fatal(err)
	}

	if admin.User == nil {
		t.Fatal("expected user attached to created admin")
	}
	if admin.User.Email != "admin@example.com" {
		t.Fatalf("expected normalized email, got %q", admin.User.Email)
	}
	if admin.User.AccountType != "admin" {
		t.Fatalf("expected admin account type, got %q", admin.User.AccountType)
	}
	if !strings.HasPrefix(admin.User.PasswordHash, "$argon2id$") {
		t.Fatal("expected password stored hashed")
	}

	var users, profiles int64
	gdb.Model(&models.User{}).Count(&users)
	gdb.Model(&models.AdminProfile{}).Count(&profiles)
	if users != 1 || profiles != 1 {
		t.Fatalf("expected one user and one profile, got %d/%d", users, profiles)
	}
}

func TestCreateAdminValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), Payload{Email: str("not-an-email"), Password: str("short")})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateAdminDuplicateEmailRollsBack(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, basePayload()); err != nil {
		t.Fatal(err)
	}

	payload := basePayload()
	payload.FirstName = str("Bruno")
	_, err := svc.Create(ctx, payload)
	expectCode(t, err, pkgerrors.CodeConflict)

	// The failed create must not leave a stray row from either half.
	var users, profiles int64
	gdb.Model(&models.User{}).Count(&users)
	gdb.Model(&models.AdminProfile{}).Count(&profiles)
	if users != 1 || profiles != 1 {
		t.Fatalf("expected rollback to keep one user and one profile, got %d/%d", users, profiles)
	}
}

func TestUpdatePasswordRehashesAndStampsChange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, basePayload())
	if err != nil {
		t.Fatal(err)
	}
	originalHash := created.User.PasswordHash
	if created.User.LastPasswordChange != nil {
		t.Fatal("expected no password-change stamp on create")
	}

	updated, err := svc.Update(ctx, created.ID, Payload{Password: str("AnotherSecret456!")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.User.PasswordHash == originalHash {
		t.Fatal("expected password rehash on change")
	}
	if updated.User.LastPasswordChange == nil {
		t.Fatal("expected lastPasswordChange refreshed")
	}

	ok, err := security.VerifyPassword("AnotherSecret456!", updated.User.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected new password to verify, ok=%v err=%v", ok, err)
	}
}

func TestUpdatePartialProfileFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, basePayload())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx, created.ID, Payload{City: str("Valencia")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.City != "Valencia" {
		t.Fatalf("expected city updated, got %q", updated.City)
	}
	if updated.FirstName != "Ana" {
		t.Fatal("expected untouched fields to survive a partial update")
	}
}

func TestDeleteAndRestoreMoveBothHalvesTogether(t *testing.T) {
	svc, gdb := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, basePayload())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}

	var liveUsers, liveProfiles int64
	gdb.Model(&models.User{}).Count(&liveUsers)
	gdb.Model(&models.AdminProfile{}).Count(&liveProfiles)
	if liveUsers != 0 || liveProfiles != 0 {
		t.Fatalf("expected both halves soft-deleted, got %d/%d live", liveUsers, liveProfiles)
	}

	// Idempotent repeat.
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("expected repeat delete to be a no-op, got %v", err)
	}

	_, err = svc.Get(ctx, created.ID, false)
	expectCode(t, err, pkgerrors.CodeNotFound)

	trashed, err := svc.Get(ctx, created.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if !trashed.DeletedAt.Valid || trashed.User == nil || !trashed.User.DeletedAt.Valid {
		t.Fatal("expected both halves visible and stamped with includeDeleted")
	}

	restored, err := svc.Restore(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.DeletedAt.Valid || restored.User.DeletedAt.Valid {
		t.Fatal("expected both halves restored together")
	}

	_, err = svc.Restore(ctx, created.ID)
	expectCode(t, err, pkgerrors.CodeState)
}

func TestListSearchAndSortByEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := basePayload()
	if _, err := svc.Create(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := Payload{
		Email:     str("zoe@example.com"),
		Password:  str("SuperSecret123!"),
		FirstName: str("Zoe"),
		LastName:  str("Prieto"),
		City:      str("Madrid"),
	}
	if _, err := svc.Create(ctx, second); err != nil {
		t.Fatal(err)
	}

	rows, total, err := svc.List(ctx, ListQuery{Params: listing.Params{
		Page: 1, Limit: 10, SortBy: "email", SortOrder: listing.SortAsc,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected two admins, got %d", len(rows))
	}
	if rows[0].User == nil || rows[0].User.Email != "admin@example.com" {
		t.Fatal("expected email-ascending order with users preloaded")
	}

	rows, _, err = svc.List(ctx, ListQuery{Params: listing.Params{
		Page: 1, Limit: 10, Search: "zoe", SortBy: "email", SortOrder: listing.SortAsc,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].FirstName != "Zoe" {
		t.Fatal("expected search across email and names")
	}

	rows, _, err = svc.List(ctx, ListQuery{
		Params:  listing.Params{Page: 1, Limit: 10, SortBy: "email", SortOrder: listing.SortAsc},
		Filters: Filters{City: "madrid"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].City != "Madrid" {
		t.Fatal("expected case-insensitive city filter")
	}
}

func TestDeletedAdminFreesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, basePayload())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Create(ctx, basePayload()); err != nil {
		t.Fatalf("expected deleted admin to free the email, got %v", err)
	}
}
