package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nexora/go-shop-api/internal/config"
	"github.com/nexora/go-shop-api/internal/handler"
	"github.com/nexora/go-shop-api/internal/logger"
	"github.com/nexora/go-shop-api/internal/middleware"
	"github.com/nexora/go-shop-api/internal/repository"
	"github.com/nexora/go-shop-api/internal/service"
)

func main() {
	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}

	// MongoDB; an unreachable database is fatal at startup.
	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()

	client, err := repository.Connect(connectCtx, cfg.Mongo.URL)
	if err != nil {
		log.Fatal("connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(connectCtx, db); err != nil {
		log.Fatal("ensure indexes", zap.Error(err))
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT.SecretBytes(), cfg.JWT.Expiry)
	userSvc := service.NewUserService(userRepo)
	productSvc := service.NewProductService(productRepo)
	cartSvc := service.NewCartService(cartRepo)
	orderSvc := service.NewOrderService(orderRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc, log)
	userH := handler.NewUserHandler(userSvc, log)
	productH := handler.NewProductHandler(productSvc, log)
	cartH := handler.NewCartHandler(cartSvc, log)
	orderH := handler.NewOrderHandler(orderSvc, log)
	healthH := handler.NewHealthHandler(client)

	// Router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", middleware.TokenHeader},
	}))

	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)

	authRequired := middleware.AuthRequired(cfg.JWT.SecretBytes())
	adminOnly := middleware.AdminOnly()
	authLimit := middleware.RateLimit(rate.Limit(2), 5)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", authLimit, authH.Register)
		users.POST("/login", authLimit, authH.Login)
		users.PUT("/profile", authRequired, userH.UpdateProfile)
		users.PUT("/password", authRequired, userH.ChangePassword)
		users.DELETE("/account", authRequired, userH.DeleteAccount)
		users.GET("", authRequired, adminOnly, userH.List)
		users.GET("/:id", authRequired, adminOnly, userH.Get)
		users.PUT("/:id/activate", authRequired, adminOnly, userH.Activate)
		users.PUT("/:id/deactivate", authRequired, adminOnly, userH.Deactivate)

		products := api.Group("/products")
		products.GET("", productH.List)
		products.GET("/search", productH.Search)
		products.GET("/categories", productH.Categories)
		products.GET("/featured", productH.Featured)
		products.GET("/related/:category", productH.Related)
		products.GET("/:id", productH.Get)
		products.POST("", authRequired, adminOnly, productH.Create)
		products.PUT("/:id", authRequired, adminOnly, productH.Update)
		products.DELETE("/:id", authRequired, adminOnly, productH.Delete)

		cart := api.Group("/cart", authRequired)
		cart.POST("/add", cartH.Add)
		cart.PUT("/update", cartH.Update)
		cart.DELETE("/remove", cartH.Remove)

		orders := api.Group("/orders", authRequired)
		orders.POST("", orderH.Create)
		orders.GET("/user/:userId", orderH.ListByUser)
		orders.GET("/:id", orderH.Get)
		orders.GET("/:id/status", orderH.GetStatus)
		orders.PUT("/:id", orderH.Update)
		orders.PUT("/:id/cancel", orderH.Cancel)
		orders.PUT("/:id/deliver", orderH.MarkDelivered)
		orders.PUT("/:id/status", orderH.UpdateStatus)
		orders.PUT("/:id/shipping-status", orderH.UpdateShippingStatus)
		orders.DELETE("/:id", orderH.Delete)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
