package routes

import (
	"time"

	"pawconnect/config"
	"pawconnect/database"
	"pawconnect/handlers"
	"pawconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, db *database.DB, uploader handlers.ImageUploader) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "PawConnect API is running 🐾",
			"service": "healthy",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	auth := handlers.NewAuthHandler(db, cfg)
	pets := handlers.NewPetHandler(db)
	favorites := handlers.NewFavoriteHandler(db)
	reviews := handlers.NewReviewHandler(db)
	upload := handlers.NewUploadHandler(uploader, cfg)

	// Public routes (no auth required)
	router.POST("/auth/register", auth.Register)
	router.POST("/auth/login", auth.Login)
	router.POST("/auth/google", auth.GoogleAuth)
	router.GET("/pets", pets.ListPets)
	router.GET("/pets/:id", pets.GetPet)

	// Protected routes group
	protected := router.Group("/")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret, db))

	protected.GET("/auth/profile", auth.Profile)
	protected.PUT("/auth/profile", auth.UpdateProfile)

	protected.GET("/pets/mypets", pets.GetMyPets)
	protected.GET("/pets/favorites", favorites.ListFavorites)
	protected.POST("/pets", pets.CreatePet)
	protected.PUT("/pets/:id", pets.UpdatePet)
	protected.DELETE("/pets/:id", pets.DeletePet)

	protected.POST("/pets/:id/favorite", favorites.AddFavorite)
	protected.DELETE("/pets/:id/favorite", favorites.RemoveFavorite)
	protected.POST("/pets/:id/review", reviews.AddReview)

	protected.POST("/upload", upload.UploadImage)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}
