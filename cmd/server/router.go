package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/i18n"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"
	"storefront-be/internal/wishlist"
)

type server struct {
	locales []string
	tokens  *auth.TokenManager
	limiter *middleware.RateLimiter
	metrics *metrics.Metrics

	products   *product.Handler
	categories *category.Handler
	users      *user.Handler
	wishlist   *wishlist.Handler
	cart       *cart.Handler
}

func setupRouter(s *server) *gin.Engine {
	r := gin.New()
	// ClientIP keys the rate limiter; forwarding headers are not trusted.
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.L().Warn("failed to reset trusted proxies", zap.Error(err))
	}
	r.Use(
		gin.Recovery(),
		logger.RequestID(),
		logger.Logging(middleware.UserID),
		s.metrics.Middleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	for _, locale := range s.locales {
		if !i18n.Supported(locale) {
			logger.L().Warn("skipping unsupported locale", zap.String("locale", locale))
			continue
		}

		g := r.Group("/"+locale,
			middleware.Locale(locale),
			middleware.Authenticate(s.tokens),
			s.limiter.Middleware(),
		)

		g.GET("/products", s.products.List)
		g.GET("/products/:code", s.products.Show)
		g.GET("/categories", s.categories.List)

		admin := g.Group("/products", middleware.RequireRole(utils.RoleAdmin))
		admin.POST("", s.products.Create)
		admin.PATCH("/:code", s.products.Update)
		admin.DELETE("/:code", s.products.Delete)

		g.POST("/account", s.users.Register)
		g.POST("/token", s.users.Login)

		wl := g.Group("/wishlist", middleware.RequireAuth())
		wl.GET("", s.wishlist.Get)
		wl.POST("/:code", s.wishlist.Add)
		wl.DELETE("/:code", s.wishlist.Remove)

		ct := g.Group("/cart", middleware.RequireAuth())
		ct.GET("", s.cart.Get)
		ct.POST("", s.cart.Add)
		ct.DELETE("/:code", s.cart.Remove)
		ct.DELETE("", s.cart.Clear)
	}

	return r
}
