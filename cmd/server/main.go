package main

import (
	"log"
	"os"
	"strconv"

	"github.com/KanayaActa/IceBreaker/config"
	"github.com/KanayaActa/IceBreaker/controllers"
	"github.com/KanayaActa/IceBreaker/db"
	"github.com/KanayaActa/IceBreaker/internal/ratelimit"
	"github.com/KanayaActa/IceBreaker/middlewares"
	"github.com/KanayaActa/IceBreaker/services"
	"github.com/KanayaActa/IceBreaker/utils"
	"github.com/KanayaActa/IceBreaker/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Environment variables take precedence over the yaml file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment variables.")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	controllers.Init(cfg)
	services.InitResultService(cfg)
	if err := services.InitChatService(cfg); err != nil {
		log.Fatalf("Failed to init chat service: %v", err)
	}
	if err := ratelimit.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	if cfg.Seed.Enabled {
		utils.PopulateSampleData()
	}

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Public routes for authentication
	router.POST("/api/auth/signup", controllers.SignUp)
	router.POST("/api/auth/signin", controllers.SignIn)

	// Protected routes (JWT auth)
	auth := router.Group("/api")
	auth.Use(middlewares.AuthMiddleware(cfg.JWT.Secret))
	{
		auth.POST("/user", controllers.CreateUser)
		auth.GET("/user", controllers.SearchUsers)
		auth.GET("/user/:userId", controllers.GetUser)
		auth.PUT("/user/:userId", controllers.UpdateUser)

		auth.POST("/category", controllers.CreateCategory)
		auth.GET("/category", controllers.ListCategories)
		auth.GET("/category/:categoryId", controllers.GetCategory)
		auth.PUT("/category/:categoryId", controllers.UpdateCategory)

		auth.POST("/match", controllers.CreateMatch)
		auth.GET("/match/:matchId", controllers.GetMatch)
		auth.PUT("/match/:matchId", controllers.UpdateMatch)
		auth.GET("/matches/user/:userId", controllers.GetUserMatches)
		auth.GET("/matches/category/:categoryId", controllers.GetCategoryMatches)

		auth.GET("/rating/:ratingId", controllers.GetRating)
		auth.PUT("/rating/:ratingId", controllers.UpdateRating)
		auth.GET("/ratings/user/:userId/category/:categoryId", controllers.GetUserCategoryRating)
		auth.GET("/rating-history/:userId/:categoryId", controllers.GetRatingHistory)

		auth.POST("/result", middlewares.ResultRateLimiter(), controllers.RecordResult)
		auth.GET("/ranking/category/:categoryId", controllers.GetCategoryRanking)

		auth.POST("/chat", controllers.CreateChat)
		auth.GET("/chat/user/:userId", controllers.GetUserChats)
	}

	// Live result summaries. Registered outside the Bearer group: the
	// websocket handshake carries the token as a query parameter.
	router.GET("/ws/results", middlewares.WSAuthMiddleware(cfg.JWT.Secret), websocket.ResultFeedHandler)

	return router
}
