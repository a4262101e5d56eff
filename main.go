package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"learning-service/internal/db"
	"learning-service/internal/event"
	"learning-service/internal/handlers"
	"learning-service/internal/repository"
	"learning-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	db.InitMongo(mongoURI)
	database := db.Client.Database("learning_service")

	if err := db.EnsureIndexes(context.Background(), database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if os.Getenv("SEED_DATA") == "true" {
		if err := db.Seed(context.Background(), database); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	r := gin.Default()

	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	pathRepo := repository.NewPathRepository(database)
	lessonRepo := repository.NewLessonRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	streakRepo := repository.NewStreakRepository(database)
	badgeRepo := repository.NewBadgeRepository(database)

	// Services
	lessonService := service.NewLessonService(pathRepo, lessonRepo)
	progressService := service.NewProgressService(progressRepo, streakRepo, badgeRepo, lessonRepo, pathRepo)

	// Handlers
	lessonHandler := handlers.NewLessonHandler(lessonService, progressService, publisher)
	progressHandler := handlers.NewProgressHandler(progressService)
	scoreHandler := handlers.NewScoreHandler(lessonService)

	// Public routes - lesson catalog
	publicPath := r.Group("/public/learning/path")
	{
		publicPath.GET("/", func(c *gin.Context) {
			lessonHandler.ListPaths(c)
			publisher.Publish(event.PathListViewed, nil)
		})
	}

	// Protected routes - everything keyed to the authenticated user
	protected := r.Group("/protected/learning", handlers.AuthRequired([]byte(jwtSecret)))
	{
		protected.GET("/path/:id", lessonHandler.GetPath)
		protected.GET("/lesson/:id", lessonHandler.GetLesson)
		protected.POST("/lesson/:id/start", lessonHandler.StartLesson)
		protected.POST("/lesson/:id/complete", lessonHandler.CompleteLesson)
		protected.GET("/progress/summary", progressHandler.GetSummary)

		protected.POST("/score/matching", scoreHandler.ScoreMatching)
		protected.POST("/score/drag-drop", scoreHandler.ScoreDragDrop)
		protected.POST("/score/scenario", scoreHandler.AcknowledgeScenario)
		protected.POST("/score/aggregate", scoreHandler.Aggregate)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
