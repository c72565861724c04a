package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/veloralabs/storefront_api/internal/cache"
	"github.com/veloralabs/storefront_api/internal/config"
	"github.com/veloralabs/storefront_api/internal/database"
	"github.com/veloralabs/storefront_api/internal/handler"
	"github.com/veloralabs/storefront_api/internal/middleware"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/service"
	"github.com/veloralabs/storefront_api/internal/utils"
	"github.com/veloralabs/storefront_api/internal/worker"
)

// main is the application entrypoint for the Velora storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront api")

	// 3. Connect database
	db, err := database.Connect(&cfg.Mongo)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Connect to Redis (optional: an empty REDIS_HOST disables caching)
	var redisClient *cache.RedisClient
	if cfg.Redis.Host != "" {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - catalog caching disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Msg("redis connected successfully")
		}
	} else {
		log.Info().Msg("REDIS_HOST not set - catalog caching disabled")
	}

	// 3b. Initialize catalog cache
	var catalogCache service.ListingCache
	if redisClient != nil {
		catalogCache = cache.NewCatalogCache(redisClient, cfg.Redis.CacheTTL)
	}

	// 4. Initialize JWT signing
	utils.InitJWT(cfg.JWTSecret, cfg.JWTTTL)

	// 5. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	trxRepo := repository.NewTransactionRepository(db)

	// 6. Initialize services
	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	catalogSvc := service.NewCatalogService(productRepo, categoryRepo, catalogCache)
	orderSvc := service.NewOrderService(orderRepo, productRepo, trxRepo)
	offerSvc := service.NewOfferService(offerRepo)
	reviewSvc := service.NewReviewService(reviewRepo, productRepo)
	ticketSvc := service.NewTicketService(ticketRepo)

	// 6a. Seed bootstrap admin account
	if cfg.Admin.Email != "" {
		if err := authSvc.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Error().Err(err).Msg("admin bootstrap failed")
			fmt.Fprintf(os.Stderr, "admin bootstrap failed: %v\n", err)
			os.Exit(1)
		}
	}

	// 7. Initialize handlers
	loginLimiter := middleware.NewLoginRateLimiter()
	handlers := &Handlers{
		Health:            handler.NewHealthHandler(db, redisClient),
		Auth:              handler.NewAuthHandler(authSvc, loginLimiter),
		Profile:           handler.NewProfileHandler(userSvc),
		Product:           handler.NewProductHandler(catalogSvc),
		Category:          handler.NewCategoryHandler(catalogSvc),
		Offer:             handler.NewOfferHandler(offerSvc),
		Order:             handler.NewOrderHandler(orderSvc),
		Review:            handler.NewReviewHandler(reviewSvc),
		Ticket:            handler.NewTicketHandler(ticketSvc),
		ProductManagement: handler.NewProductManagementHandler(catalogSvc),
		UserManagement:    handler.NewUserManagementHandler(userSvc),
		AdminTransaction:  handler.NewAdminTransactionHandler(trxRepo),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewOfferExpiryWorker(offerSvc, cfg.Worker.OfferExpiryInterval).Start(ctx)
	go worker.NewTransactionSweepWorker(trxRepo, cfg.Worker.TransactionSweepInterval, cfg.Worker.TransactionMaxPending).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health            *handler.HealthHandler
	Auth              *handler.AuthHandler
	Profile           *handler.ProfileHandler
	Product           *handler.ProductHandler
	Category          *handler.CategoryHandler
	Offer             *handler.OfferHandler
	Order             *handler.OrderHandler
	Review            *handler.ReviewHandler
	Ticket            *handler.TicketHandler
	ProductManagement *handler.ProductManagementHandler
	UserManagement    *handler.UserManagementHandler
	AdminTransaction  *handler.AdminTransactionHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Authentication
	auth := router.Group("/api/auth")
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/login", handlers.Auth.Login)
	}

	// Public storefront routes
	router.GET("/v1/products", handlers.Product.GetProducts)
	router.GET("/v1/products/:slug", handlers.Product.GetProduct)
	router.GET("/v1/products/:slug/reviews", handlers.Review.GetProductReviews)
	router.GET("/v1/categories", handlers.Category.GetCategories)
	router.GET("/v1/categories/:slug", handlers.Category.GetCategory)
	router.GET("/v1/offers", handlers.Offer.GetOffers)

	// Authenticated customer routes
	me := router.Group("/v1")
	me.Use(jwtMiddleware.Handle())
	{
		me.GET("/me", handlers.Profile.GetProfile)
		me.PUT("/me", handlers.Profile.UpdateProfile)
		me.GET("/me/orders", handlers.Order.GetMyOrders)
		me.GET("/me/orders/:id", handlers.Order.GetMyOrder)
		me.POST("/checkout", handlers.Order.Checkout)
		me.POST("/products/:slug/reviews", handlers.Review.CreateReview)
		me.POST("/tickets", handlers.Ticket.CreateTicket)
		me.GET("/me/tickets", handlers.Ticket.GetMyTickets)
		me.GET("/tickets/:id", handlers.Ticket.GetTicket)
		me.POST("/tickets/:id/replies", handlers.Ticket.ReplyTicket)
	}

	// Admin console routes
	admin := router.Group("/v1/admin")
	admin.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin())
	{
		// Product Management
		admin.POST("/products", handlers.ProductManagement.CreateProduct)
		admin.PUT("/products/:id", handlers.ProductManagement.UpdateProduct)
		admin.DELETE("/products/:id", handlers.ProductManagement.DeleteProduct)

		// Category Management
		admin.POST("/categories", handlers.ProductManagement.CreateCategory)
		admin.PUT("/categories/:id", handlers.ProductManagement.UpdateCategory)
		admin.DELETE("/categories/:id", handlers.ProductManagement.DeleteCategory)

		// Offer Management
		admin.GET("/offers", handlers.Offer.ListOffers)
		admin.POST("/offers", handlers.Offer.CreateOffer)
		admin.PUT("/offers/:id", handlers.Offer.UpdateOffer)
		admin.DELETE("/offers/:id", handlers.Offer.DeleteOffer)

		// Order Management
		admin.GET("/orders", handlers.Order.ListOrders)
		admin.PUT("/orders/:id/status", handlers.Order.UpdateOrderStatus)

		// Review Moderation
		admin.GET("/reviews", handlers.Review.GetModerationQueue)
		admin.PUT("/reviews/:id/status", handlers.Review.ModerateReview)

		// Ticket Management
		admin.GET("/tickets", handlers.Ticket.ListTickets)
		admin.PUT("/tickets/:id/status", handlers.Ticket.UpdateTicketStatus)
		admin.PUT("/tickets/:id/priority", handlers.Ticket.UpdateTicketPriority)

		// User Management
		admin.GET("/users", handlers.UserManagement.ListUsers)
		admin.PUT("/users/:id/active", handlers.UserManagement.SetUserActive)

		// Transactions
		admin.GET("/transactions", handlers.AdminTransaction.ListTransactions)
		admin.GET("/orders/:id/transactions", handlers.AdminTransaction.GetOrderTransactions)
		admin.PUT("/transactions/:id/status", handlers.AdminTransaction.UpdateTransactionStatus)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
