package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
	"storefront-be/internal/wishlist"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := db.InitDB(cfg)
	defer database.Close()

	store, closeStore := newCartStore(ctx, cfg)
	defer closeStore()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categorySvc := category.NewService(category.NewRepository(database))

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens)

	wishlistRepo := wishlist.NewRepository(database)
	wishlistSvc := wishlist.NewService(wishlistRepo, productRepo)

	cartSvc := cart.NewService(store, productRepo, publisher, m)

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey, "/token", "/account")
	go limiter.Cleanup(ctx, time.Minute)

	router := setupRouter(&server{
		locales:    cfg.SupportedLocales,
		tokens:     tokens,
		limiter:    limiter,
		metrics:    m,
		products:   product.NewHandler(productSvc),
		categories: category.NewHandler(categorySvc),
		users:      user.NewHandler(userSvc, cfg.JWTTTL, cfg.AppEnv == "production"),
		wishlist:   wishlist.NewHandler(wishlistSvc),
		cart:       cart.NewHandler(cartSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
