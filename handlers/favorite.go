package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"pawconnect/database"
	"pawconnect/middleware"
	"pawconnect/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteStore is the slice of the record stores the favorites flow writes
// through. The mutations behind it touch two separate documents with no
// transaction; a failure between them leaves the counter off by one.
type FavoriteStore interface {
	PetExists(ctx context.Context, petID primitive.ObjectID) (bool, error)
	PushFavorite(ctx context.Context, userID, petID primitive.ObjectID) error
	PullFavorite(ctx context.Context, userID, petID primitive.ObjectID) (bool, error)
	IncFavoriteCount(ctx context.Context, petID primitive.ObjectID, delta int) error
	FavoritePets(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error)
}

type FavoriteHandler struct {
	store FavoriteStore
}

func NewFavoriteHandler(db *database.DB) *FavoriteHandler {
	return &FavoriteHandler{store: db}
}

// isFavorite reports whether the pet is already in the user's favorite set.
func isFavorite(user *models.User, petID primitive.ObjectID) bool {
	for _, fav := range user.Favorites {
		if fav == petID {
			return true
		}
	}
	return false
}

// AddFavorite pushes the pet onto the caller's favorite set and bumps the
// pet's counter. Adding a pet that is already a favorite is rejected rather
// than silently succeeding.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	petID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	exists, err := h.store.PetExists(ctx, petID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}

	if isFavorite(user, petID) {
		c.JSON(http.StatusConflict, gin.H{"error": "Pet is already in favorites"})
		return
	}

	if err := h.store.PushFavorite(ctx, user.ID, petID); err != nil {
		log.Printf("[AddFavorite] user update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}
	if err := h.store.IncFavoriteCount(ctx, petID, 1); err != nil {
		log.Printf("[AddFavorite] counter update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

// RemoveFavorite is idempotent in effect: removing a pet that was never
// favorited succeeds without touching the counter, and the counter never
// drops below zero.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	petID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	exists, err := h.store.PetExists(ctx, petID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}

	removed, err := h.store.PullFavorite(ctx, user.ID, petID)
	if err != nil {
		log.Printf("[RemoveFavorite] user update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	// Only decrement when something was actually removed.
	if removed {
		if err := h.store.IncFavoriteCount(ctx, petID, -1); err != nil {
			log.Printf("[RemoveFavorite] counter update failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// ListFavorites returns the caller's favorited pets, newest first.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if len(user.Favorites) == 0 {
		c.JSON(http.StatusOK, []models.Pet{})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	pets, err := h.store.FavoritePets(ctx, user.Favorites)
	if err != nil {
		log.Printf("[ListFavorites] find failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, pets)
}
