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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewHandler struct {
	pets *mongo.Collection
}

func NewReviewHandler(db *database.DB) *ReviewHandler {
	return &ReviewHandler{pets: db.Pets}
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// AddReview appends a review to the listing. Nothing stops the same reviewer
// from reviewing a listing twice; that restriction is an open product
// question.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating and comment required"})
		return
	}

	petID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}

	review := models.Review{
		Reviewer:  user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var pet models.Pet
	err = h.pets.FindOneAndUpdate(
		ctx,
		bson.M{"_id": petID},
		bson.M{"$push": bson.M{"reviews": review}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&pet)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}
	if err != nil {
		log.Printf("[AddReview] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		return
	}

	c.JSON(http.StatusOK, pet)
}
