package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment. It is built
// once in main and passed by reference; no other package reads os.Getenv.
type Config struct {
	Port    string
	GinMode string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	TokenTTL  time.Duration

	CloudinaryURL  string
	UploadFolder   string
	PlaceholderURL string

	AllowedOrigins []string
}

const defaultPlaceholderURL = "https://via.placeholder.com/300x200?text=Pet+Image"

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "pawconnect"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       24 * time.Hour,
		CloudinaryURL:  getEnv("CLOUDINARY_URL", ""),
		UploadFolder:   getEnv("CLOUDINARY_UPLOAD_FOLDER", "pawconnect/pets"),
		PlaceholderURL: getEnv("PLACEHOLDER_IMAGE_URL", defaultPlaceholderURL),
		AllowedOrigins: splitOrigins(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
	}

	if hours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "")); err == nil && hours > 0 {
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
