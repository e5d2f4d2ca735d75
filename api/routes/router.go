package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dermacart/dermacart-backend/api/controllers"
	"github.com/dermacart/dermacart-backend/api/middleware"
	"github.com/dermacart/dermacart-backend/internal/cart"
	"github.com/dermacart/dermacart-backend/internal/compare"
	"github.com/dermacart/dermacart-backend/internal/newsletter"
	"github.com/dermacart/dermacart-backend/internal/orders"
	product "github.com/dermacart/dermacart-backend/internal/products"
	"github.com/dermacart/dermacart-backend/pkg/config"
	"github.com/dermacart/dermacart-backend/pkg/logger"
	"github.com/dermacart/dermacart-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	kvP controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	productService product.Service,
	cartService cart.Service,
	compareService compare.Service,
	newsletterService newsletter.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
		middleware.CartSession(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, kvP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(productService, logg))
			r.Get("/{productId}", controllers.ProductsGet(productService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Route("/compare", func(r chi.Router) {
			r.Get("/", controllers.CompareGet(compareService, logg))
			r.Delete("/", controllers.CompareClear(compareService, logg))
			r.Post("/items", controllers.CompareAdd(compareService, logg))
			r.Delete("/items/{productId}", controllers.CompareRemove(compareService, logg))
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Post("/subscribe", controllers.NewsletterSubscribe(newsletterService, logg))
			r.Post("/unsubscribe", controllers.NewsletterUnsubscribe(newsletterService, logg))
		})

		r.Post("/checkout", controllers.Checkout(orderService, logg))
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(orderService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(orderService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductsCreate(productService, logg))
			r.Patch("/{productId}", controllers.AdminProductsUpdate(productService, logg))
			r.Delete("/{productId}", controllers.AdminProductsDelete(productService, logg))
			r.Put("/{productId}/discount-tiers", controllers.AdminProductsReplaceTiers(productService, logg))
		})
	})

	return r
}
