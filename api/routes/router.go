package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fermedirect/storefront-backend/api/controllers"
	"github.com/fermedirect/storefront-backend/api/middleware"
	authsvc "github.com/fermedirect/storefront-backend/internal/auth"
	"github.com/fermedirect/storefront-backend/internal/cart"
	"github.com/fermedirect/storefront-backend/internal/catalog"
	checkoutsvc "github.com/fermedirect/storefront-backend/internal/checkout"
	"github.com/fermedirect/storefront-backend/internal/promos"
	"github.com/fermedirect/storefront-backend/internal/reviews"
	settingssvc "github.com/fermedirect/storefront-backend/internal/settings"
	"github.com/fermedirect/storefront-backend/internal/socials"
	pkgAuth "github.com/fermedirect/storefront-backend/pkg/auth"
	"github.com/fermedirect/storefront-backend/pkg/auth/session"
	"github.com/fermedirect/storefront-backend/pkg/config"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	DBPinger    controllers.Pinger
	Sessions    sessionManager
	Auth        authsvc.Service
	Catalog     catalog.Service
	Cart        cart.Service
	Checkout    checkoutsvc.Service
	PromoEngine *promos.Engine
	Promos      promos.Service
	Reviews     reviews.Service
	Socials     socials.Service
	Settings    settingssvc.Service
	Theme       *settingssvc.Controller
	Metrics     prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewRateLimitPolicy("login", time.Minute, 10, 5)
	promoPolicy := middleware.NewRateLimitPolicy("promo", time.Minute, 20, 0)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.Redis,
		}))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.RateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	// Public storefront surface. Every route carries a cart session so the
	// cart and promo endpoints can key into Redis.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))

		r.Get("/products", controllers.ProductList(deps.Catalog, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.Catalog, logg))
		r.Get("/categories", controllers.CategoryList(deps.Catalog, logg))
		r.Get("/farms", controllers.FarmList(deps.Catalog, logg))
		r.Get("/reviews", controllers.ReviewListPublic(deps.Reviews, logg))
		r.Post("/reviews", controllers.ReviewSubmit(deps.Reviews, logg))
		r.Get("/socials", controllers.SocialListPublic(deps.Socials, logg))
		r.Get("/settings", controllers.PublicSettings(deps.Settings, logg))
		r.Get("/theme", controllers.ThemeSnapshot(deps.Theme, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, logg))
			r.Put("/items", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items", controllers.CartRemoveItem(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
		})

		r.Route("/promo", func(r chi.Router) {
			r.With(middleware.RateLimit(promoPolicy, deps.Redis, logg)).
				Post("/apply", controllers.PromoApply(deps.PromoEngine, logg))
			r.Delete("/", controllers.PromoRemove(deps.PromoEngine, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/advance", controllers.CheckoutAdvance(deps.Checkout, logg))
			r.Post("/complete", controllers.CheckoutComplete(deps.Checkout, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(pkgAuth.RoleAdmin, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductList(deps.Catalog, logg))
			r.Post("/", controllers.ProductCreate(deps.Catalog, logg))
			r.Put("/{productId}", controllers.ProductUpdate(deps.Catalog, logg))
			r.Delete("/{productId}", controllers.ProductDelete(deps.Catalog, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CategoryCreate(deps.Catalog, logg))
			r.Put("/{categoryId}", controllers.CategoryUpdate(deps.Catalog, logg))
			r.Delete("/{categoryId}", controllers.CategoryDelete(deps.Catalog, logg))
		})
		r.Route("/farms", func(r chi.Router) {
			r.Post("/", controllers.FarmCreate(deps.Catalog, logg))
			r.Put("/{farmId}", controllers.FarmUpdate(deps.Catalog, logg))
			r.Delete("/{farmId}", controllers.FarmDelete(deps.Catalog, logg))
		})
		r.Route("/promos", func(r chi.Router) {
			r.Get("/", controllers.AdminPromoList(deps.Promos, logg))
			r.Post("/", controllers.AdminPromoCreate(deps.Promos, logg))
			r.Put("/{promoId}", controllers.AdminPromoUpdate(deps.Promos, logg))
			r.Delete("/{promoId}", controllers.AdminPromoDelete(deps.Promos, logg))
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.AdminReviewList(deps.Reviews, logg))
			r.Post("/{reviewId}/moderate", controllers.ReviewModerate(deps.Reviews, logg))
			r.Delete("/{reviewId}", controllers.ReviewDelete(deps.Reviews, logg))
		})
		r.Route("/socials", func(r chi.Router) {
			r.Get("/", controllers.AdminSocialList(deps.Socials, logg))
			r.Post("/", controllers.SocialCreate(deps.Socials, logg))
			r.Put("/{socialId}", controllers.SocialUpdate(deps.Socials, logg))
			r.Delete("/{socialId}", controllers.SocialDelete(deps.Socials, logg))
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.AdminSettingsGet(deps.Settings, logg))
			r.Post("/", controllers.AdminSettingsUpdate(deps.Settings, deps.Theme, logg))
		})
	})

	return r
}
