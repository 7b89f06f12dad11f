package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travel-app/tour-review-service/internal/config"
	"travel-app/tour-review-service/internal/handler"
	"travel-app/tour-review-service/internal/repository"
	"travel-app/tour-review-service/internal/services"
	"travel-app/tour-review-service/internal/utils"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDBName)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	redisClient, err := utils.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return redisClient.Close()
	})

	reviewRepo := repository.NewReviewRepository(db)
	if err := reviewRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create review indexes:", err)
	}
	tourRepo := repository.NewTourRepository(db)
	userRepo := repository.NewUserRepository(db)

	reviewService := services.NewReviewService(reviewRepo, tourRepo, userRepo, redisClient)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminReviewHandler(reviewService)

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api/v1")

	reviews := api.Group("/tour-reviews")
	{
		reviews.GET("/get/:tourId", reviewHandler.GetReviews)
		reviews.GET("/summary/:tourId", reviewHandler.GetSummary)

		protected := reviews.Group("")
		protected.Use(utils.AuthMiddleware(jwtUtil))
		{
			protected.POST("/:tourId", reviewHandler.CreateReview)
			protected.DELETE("/delete/:id", reviewHandler.DeleteReview)
		}
	}

	admin := api.Group("/admin/tour-reviews")
	admin.Use(utils.AuthMiddleware(jwtUtil))
	{
		admin.GET("/:tourId", adminHandler.ListReviews)
		admin.DELETE("/delete/:id", adminHandler.DeleteReview)
	}

	server := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("Tour Review Service running on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
