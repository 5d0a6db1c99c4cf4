package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawconnect/config"
	"pawconnect/database"
	"pawconnect/handlers"
	"pawconnect/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("🚀 Starting PawConnect API Server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration error: ", err)
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var db *database.DB
	for i := 1; i <= 3; i++ {
		db, err = database.Connect(context.Background(), cfg)
		if err == nil {
			break
		}
		log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("❌ Failed to connect to MongoDB: ", err)
	}
	defer func() {
		if err := db.Disconnect(); err != nil {
			log.Println("❌ MongoDB disconnect error:", err)
		}
	}()

	// ===== IMAGE STORE =====
	uploader, err := handlers.NewCloudinaryUploader(cfg)
	if err != nil {
		log.Fatal("❌ Cloudinary configuration error: ", err)
	}

	// ===== GIN MODE =====
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
		log.Println("⚙️ Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("⚙️ Running in DEBUG mode")
	}

	router := routes.SetupRouter(cfg, db, uploader)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error: ", err)
		}
	}()

	log.Println("✅ Server is ready and accepting connections")

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
