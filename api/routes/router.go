package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leafline/leafline-backend/api/controllers"
	"github.com/leafline/leafline-backend/api/middleware"
	"github.com/leafline/leafline-backend/internal/editor"
	product "github.com/leafline/leafline-backend/internal/products"
	"github.com/leafline/leafline-backend/internal/storefront"
	"github.com/leafline/leafline-backend/pkg/auth/session"
	"github.com/leafline/leafline-backend/pkg/config"
	"github.com/leafline/leafline-backend/pkg/db"
	"github.com/leafline/leafline-backend/pkg/enums"
	"github.com/leafline/leafline-backend/pkg/logger"
	"github.com/leafline/leafline-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	storefrontService storefront.Service,
	editorService editor.Service,
	productService product.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	generatePolicy := middleware.NewRateLimitPolicy(
		"generate",
		cfg.RateLimit.GenerateWindow,
		cfg.RateLimit.GenerateIPLimit,
		cfg.RateLimit.GenerateVendorLimit,
	)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/storefront/templates", controllers.StorefrontTemplates(storefrontService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
			r.Get("/ping", controllers.PrivatePing())

			r.Route("/vendor", func(r chi.Router) {
				r.Use(
					middleware.VendorContext(logg),
					middleware.RequireRole(logg, string(enums.ActorRoleVendor), string(enums.ActorRoleStaff)),
					middleware.Idempotency(redisClient, logg),
				)

				r.Route("/storefront", func(r chi.Router) {
					r.With(middleware.RateLimit(generatePolicy, redisClient, logg)).
						Post("/generate", controllers.StorefrontGenerate(storefrontService, logg))
					r.Get("/", controllers.StorefrontGet(storefrontService, logg))

					r.Post("/drag", controllers.EditorStartDrag(editorService, logg))
					r.Delete("/drag", controllers.EditorEndDrag(editorService, logg))

					r.Route("/sections", func(r chi.Router) {
						r.Post("/reorder", controllers.EditorReorderSections(editorService, logg))
						r.Post("/{sectionId}/move", controllers.EditorMoveSection(editorService, logg))
						r.Post("/{sectionId}/components/reorder", controllers.EditorReorderComponents(editorService, logg))
						r.Delete("/{sectionId}", controllers.EditorRemoveSection(editorService, logg))
					})

					r.Route("/components", func(r chi.Router) {
						r.Post("/", controllers.EditorAddComponent(editorService, logg))
						r.Post("/{componentId}/move", controllers.EditorMoveComponent(editorService, logg))
						r.Patch("/{componentId}", controllers.EditorUpdateComponent(editorService, logg))
						r.Delete("/{componentId}", controllers.EditorRemoveComponent(editorService, logg))
					})
				})

				r.Route("/products", func(r chi.Router) {
					r.Get("/", controllers.VendorListProducts(productService, logg))
					r.Get("/summary", controllers.VendorProductSummary(productService, logg))
					r.Get("/{productId}", controllers.VendorGetProduct(productService, logg))
				})
			})
		})
	})

	return r
}
