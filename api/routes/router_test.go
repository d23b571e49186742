package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rs/zerolog"
	"github.com/shopcartlabs/shopcart-backend/internal/admins"
	"github.com/shopcartlabs/shopcart-backend/internal/categories"
	"github.com/shopcartlabs/shopcart-backend/internal/products"
	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/db/models"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{}, &models.AdminProfile{}, &models.Category{}, &models.Product{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	client := db.FromGorm(gdb)
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Password = config.PasswordConfig{
		ArgonMemory: 8 * 1024, ArgonTime: 1, ArgonThreads: 1, SaltLength: 16, KeyLength: 32,
	}

	logg := logger.New(logger.Options{
		ServiceName: "shopcart-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})

	adminService, err := admins.NewService(admins.NewRepository(gdb), client, cfg.Password)
	if err != nil {
		t.Fatal(err)
	}
	categoryService, err := categories.NewService(categories.NewRepository(gdb))
	if err != nil {
		t.Fatal(err)
	}
	productService, err := products.NewService(products.NewRepository(gdb))
	if err != nil {
		t.Fatal(err)
	}

	return NewRouter(cfg, logg, client, nil, nil, nil, adminService, categoryService, productService)
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    json.RawMessage `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		CurrentPage int   `json:"currentPage"`
		TotalItems  int64 `json:"totalItems"`
		HasNext     bool  `json:"hasNext"`
	} `json:"pagination"`
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s response: %v (%s)", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestCategoryLifecycleOverHTTP(t *testing.T) {
	handler := newTestServer(t)

	status, env := doJSON(t, handler, "POST", "/api/v1/categories/", map[string]any{
		"name": "Fresh Vegetables",
	})
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("create: expected 201 success, got %d %s", status, env.Message)
	}
	var created struct {
		ID   uint   `json:"id"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Slug != "fresh-vegetables" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}

	// Duplicate name comes back as a 400, not a 409.
	status, env = doJSON(t, handler, "POST", "/api/v1/categories/", map[string]any{
		"name": "Fresh Vegetables",
	})
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("duplicate: expected 400, got %d", status)
	}

	path := fmt.Sprintf("/api/v1/categories/%d", created.ID)

	status, _ = doJSON(t, handler, "DELETE", path, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}

	status, _ = doJSON(t, handler, "GET", path, nil)
	if status != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", status)
	}

	status, env = doJSON(t, handler, "GET", path+"?includeDeleted=true", nil)
	if status != http.StatusOK {
		t.Fatalf("get deleted with flag: expected 200, got %d", status)
	}
	var trashed struct {
		DeletedAt *string `json:"deletedAt"`
	}
	if err := json.Unmarshal(env.Data, &trashed); err != nil {
		t.Fatal(err)
	}
	if trashed.DeletedAt == nil {
		t.Fatal("expected deletedAt set on trashed read")
	}

	status, env = doJSON(t, handler, "PATCH", path+"/restore", nil)
	if status != http.StatusOK {
		t.Fatalf("restore: expected 200, got %d", status)
	}

	// Restoring again is a state error.
	status, _ = doJSON(t, handler, "PATCH", path+"/restore", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("restore non-deleted: expected 400, got %d", status)
	}
}

func TestExplicitSlugStoredVerbatimOverHTTP(t *testing.T) {
	handler := newTestServer(t)

	status, env := doJSON(t, handler, "POST", "/api/v1/categories/", map[string]any{
		"name": "Fresh Juice",
		"slug": "juice-bar",
	})
	if status != http.StatusCreated || !env.Success {
		t.Fatalf("create with slug: expected 201 success, got %d %s", status, env.Message)
	}
	var created struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Slug != "juice-bar" {
		t.Fatalf("expected explicit slug stored verbatim, got %q", created.Slug)
	}

	status, _ = doJSON(t, handler, "POST", "/api/v1/categories/", map[string]any{
		"name": "Smoothies",
		"slug": "Not A Slug",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("malformed slug: expected 400, got %d", status)
	}
}

func TestValidationMessagesOverHTTP(t *testing.T) {
	handler := newTestServer(t)

	status, env := doJSON(t, handler, "POST", "/api/v1/products/", map[string]any{
		"name": "x",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	var messages []string
	if err := json.Unmarshal(env.Message, &messages); err != nil {
		t.Fatalf("expected message list, got %s", env.Message)
	}
	if len(messages) < 3 {
		t.Fatalf("expected accumulated field messages, got %v", messages)
	}
}

func TestProductListPaginationOverHTTP(t *testing.T) {
	handler := newTestServer(t)

	status, env := doJSON(t, handler, "POST", "/api/v1/categories/", map[string]any{
		"name": "Pantry",
	})
	if status != http.StatusCreated {
		t.Fatalf("seed category: got %d", status)
	}
	var category struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &category); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 15; i++ {
		status, _ = doJSON(t, handler, "POST", "/api/v1/products/", map[string]any{
			"categoryId":  category.ID,
			"name":        fmt.Sprintf("Product %02d", i),
			"description": "a pantry staple used in integration tests",
			"price":       "2.50",
			"quantity":    "3",
		})
		if status != http.StatusCreated {
			t.Fatalf("seed product %d: got %d", i, status)
		}
	}

	status, env = doJSON(t, handler, "GET", "/api/v1/products/?limit=10&sortBy=name&sortOrder=asc", nil)
	if status != http.StatusOK {
		t.Fatalf("list: got %d", status)
	}
	if env.Pagination == nil {
		t.Fatal("expected pagination block")
	}
	if env.Pagination.TotalItems != 15 || !env.Pagination.HasNext {
		t.Fatalf("expected 15 items across pages, got %+v", env.Pagination)
	}

	var rows []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 10 || rows[0].Name != "Product 00" {
		t.Fatalf("expected first page of 10 sorted rows, got %d", len(rows))
	}
}

func TestAdminCreateOverHTTPNeverLeaksPassword(t *testing.T) {
	handler := newTestServer(t)

	status, env := doJSON(t, handler, "POST", "/api/v1/admins/", map[string]any{
		"email":     "root@example.com",
		"password":  "SuperSecret123!",
		"firstName": "Root",
		"lastName":  "Admin",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", status, env.Message)
	}
	if bytes.Contains(env.Data, []byte("SuperSecret123!")) || bytes.Contains(env.Data, []byte("passwordHash")) {
		t.Fatal("expected credentials kept out of the response body")
	}
}
