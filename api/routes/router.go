package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopcartlabs/shopcart-backend/api/controllers"
	"github.com/shopcartlabs/shopcart-backend/api/middleware"
	"github.com/shopcartlabs/shopcart-backend/internal/admins"
	"github.com/shopcartlabs/shopcart-backend/internal/categories"
	"github.com/shopcartlabs/shopcart-backend/internal/products"
	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/metrics"
	"github.com/shopcartlabs/shopcart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTP,
	promRegistry *prometheus.Registry,
	adminService admins.Service,
	categoryService categories.Service,
	productService products.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbClient, redisClient))
	})

	if promRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, redisClient, logg))

		r.Route("/admins", func(r chi.Router) {
			r.Post("/", controllers.AdminCreate(adminService, logg))
			r.Get("/", controllers.AdminList(adminService, logg))
			r.Get("/{adminId}", controllers.AdminDetail(adminService, logg))
			r.Put("/{adminId}", controllers.AdminUpdate(adminService, logg))
			r.Delete("/{adminId}", controllers.AdminDelete(adminService, logg))
			r.Patch("/{adminId}/restore", controllers.AdminRestore(adminService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(categoryService, logg))
			r.Get("/", controllers.CategoryList(categoryService, logg))
			r.Get("/{categoryId}", controllers.CategoryDetail(categoryService, logg))
			r.Put("/{categoryId}", controllers.CategoryUpdate(categoryService, logg))
			r.Delete("/{categoryId}", controllers.CategoryDelete(categoryService, logg))
			r.Patch("/{categoryId}/restore", controllers.CategoryRestore(categoryService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.ProductCreate(productService, logg))
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/{productId}", controllers.ProductDetail(productService, logg))
			r.Put("/{productId}", controllers.ProductUpdate(productService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(productService, logg))
			r.Patch("/{productId}/restore", controllers.ProductRestore(productService, logg))
		})
	})

	return r
}
