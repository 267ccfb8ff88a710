package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SftwreDev/talipapaup-backend/internal/repository"
	"github.com/SftwreDev/talipapaup-backend/internal/service"
	"github.com/SftwreDev/talipapaup-backend/pkg/health"
	"github.com/SftwreDev/talipapaup-backend/pkg/middleware"
)

// NewRouter creates a chi router with all store routes registered.
func NewRouter(
	productService *service.ProductService,
	cartService *service.CartService,
	categoryRepo repository.CategoryRepository,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))

	// Health and metrics endpoints
	r.Get("/healthz", healthHandler.LivenessHandler())
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Catalog reads tolerate short-lived staleness; cart views never do.
	catalogCache := middleware.CacheControl(30 * time.Second)

	// Product API endpoints
	productHandler := NewProductHandler(productService, logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(catalogCache).Get("/", productHandler.ListProducts)
		r.With(catalogCache).Get("/{id}", productHandler.GetProduct)
		r.Post("/", productHandler.CreateProduct)
		r.Put("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	// Category API endpoints
	categoryHandler := NewCategoryHandler(categoryRepo, logger)

	r.Route("/api/v1/category", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(catalogCache).Get("/", categoryHandler.ListCategories)
		r.Post("/", categoryHandler.CreateCategory)
		r.Delete("/{id}", categoryHandler.DeleteCategory)
	})

	// Cart API endpoints
	cartHandler := NewCartHandler(cartService, logger)

	r.Route("/api/v1/carts", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.NoCache)

		r.Post("/", cartHandler.AddToCart)
		r.Get("/{userId}", cartHandler.GetCart)
		r.Put("/qty/{userId}/{productId}/{qty}", cartHandler.UpdateQuantity)
		r.Delete("/{userId}/{productId}", cartHandler.RemoveItem)
		r.Delete("/{userId}", cartHandler.ClearCart)
	})

	return r
}
