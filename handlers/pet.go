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

// Fallback shown when a listing is created without images; the real image
// flow goes through the upload relay first.
const placeholderPetImage = "/placeholder-pet.jpg"

type PetHandler struct {
	pets  *mongo.Collection
	users *mongo.Collection
}

func NewPetHandler(db *database.DB) *PetHandler {
	return &PetHandler{pets: db.Pets, users: db.Users}
}

type CreatePetRequest struct {
	Name                 string            `json:"name" binding:"required"`
	Type                 string            `json:"type" binding:"required,oneof=dog cat rabbit bird other"`
	Breed                string            `json:"breed" binding:"required"`
	Age                  *int              `json:"age" binding:"required,gte=0"`
	Size                 string            `json:"size" binding:"omitempty,oneof=small medium large"`
	Color                string            `json:"color"`
	Gender               string            `json:"gender" binding:"omitempty,oneof=male female unknown"`
	Description          string            `json:"description" binding:"required"`
	Images               []string          `json:"images"`
	Location             models.Location   `json:"location"`
	AdoptionRequirements string            `json:"adoptionRequirements"`
	Tags                 []string          `json:"tags"`
	HealthInfo           models.HealthInfo `json:"healthInfo"`
}

func (h *PetHandler) CreatePet(c *gin.Context) {
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	imageURL := placeholderPetImage
	if len(req.Images) > 0 {
		imageURL = req.Images[0]
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	pet := models.Pet{
		ID:                   primitive.NewObjectID(),
		Owner:                user.ID,
		Name:                 req.Name,
		Type:                 req.Type,
		Breed:                req.Breed,
		Age:                  *req.Age,
		Size:                 req.Size,
		Color:                req.Color,
		Gender:               req.Gender,
		Description:          req.Description,
		ImageURL:             imageURL,
		Images:               images,
		Location:             req.Location,
		AdoptionStatus:       models.StatusAvailable,
		AdoptionRequirements: req.AdoptionRequirements,
		Tags:                 tags,
		HealthInfo:           req.HealthInfo,
		Reviews:              []models.Review{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.pets.InsertOne(ctx, pet); err != nil {
		log.Printf("[CreatePet] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pet"})
		return
	}

	c.JSON(http.StatusCreated, pet)
}

// ListPets is the public filtered/paginated search over available listings,
// with the owner reference expanded to its public subset.
func (h *PetHandler) ListPets(c *gin.Context) {
	q := ParsePetQuery(c.Request.URL.Query())
	filter := q.Filter()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	total, err := h.pets.CountDocuments(ctx, filter)
	if err != nil {
		log.Printf("[ListPets] count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pets"})
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: q.Skip()}},
		{{Key: "$limit", Value: int64(q.Limit)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "ownerInfo"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$ownerInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "ownerInfo.password", Value: 0}, {Key: "ownerInfo.favorites", Value: 0}}}},
	}

	cursor, err := h.pets.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("[ListPets] aggregate failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pets"})
		return
	}
	defer cursor.Close(ctx)

	pets := []models.PetWithOwner{}
	if err := cursor.All(ctx, &pets); err != nil {
		log.Printf("[ListPets] decode failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode pets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pets":        pets,
		"total":       total,
		"pages":       Pages(total, q.Limit),
		"currentPage": q.Page,
	})
}

// GetPet fetches one listing and increments its view counter as part of the
// same store operation.
func (h *PetHandler) GetPet(c *gin.Context) {
	petID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var pet models.Pet
	err = h.pets.FindOneAndUpdate(
		ctx,
		bson.M{"_id": petID},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&pet)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return
	}
	if err != nil {
		log.Printf("[GetPet] fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pet"})
		return
	}

	result := models.PetWithOwner{Pet: pet}
	var owner models.User
	if err := h.users.FindOne(ctx, bson.M{"_id": pet.Owner}).Decode(&owner); err == nil {
		public := owner.Public()
		result.OwnerInfo = &public
	}

	c.JSON(http.StatusOK, result)
}

// GetMyPets returns the caller's own listings in every status, newest first.
func (h *PetHandler) GetMyPets(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.pets.Find(ctx, bson.M{"owner": user.ID}, findOptions)
	if err != nil {
		log.Printf("[GetMyPets] find failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pets"})
		return
	}
	defer cursor.Close(ctx)

	pets := []models.Pet{}
	if err := cursor.All(ctx, &pets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode pets"})
		return
	}

	c.JSON(http.StatusOK, pets)
}

type UpdatePetRequest struct {
	Name                 *string            `json:"name"`
	Type                 *string            `json:"type" binding:"omitempty,oneof=dog cat rabbit bird other"`
	Breed                *string            `json:"breed"`
	Age                  *int               `json:"age" binding:"omitempty,gte=0"`
	Size                 *string            `json:"size" binding:"omitempty,oneof=small medium large"`
	Color                *string            `json:"color"`
	Gender               *string            `json:"gender" binding:"omitempty,oneof=male female unknown"`
	Description          *string            `json:"description"`
	ImageURL             *string            `json:"imageUrl"`
	Images               *[]string          `json:"images"`
	Location             *models.Location   `json:"location"`
	AdoptionStatus       *string            `json:"adoptionStatus" binding:"omitempty,oneof=available pending adopted"`
	AdoptionRequirements *string            `json:"adoptionRequirements"`
	Tags                 *[]string          `json:"tags"`
	HealthInfo           *models.HealthInfo `json:"healthInfo"`
}

func (h *PetHandler) UpdatePet(c *gin.Context) {
	pet, done := h.loadOwnedPet(c, "update")
	if done {
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.Breed != nil {
		set["breed"] = *req.Breed
	}
	if req.Age != nil {
		set["age"] = *req.Age
	}
	if req.Size != nil {
		set["size"] = *req.Size
	}
	if req.Color != nil {
		set["color"] = *req.Color
	}
	if req.Gender != nil {
		set["gender"] = *req.Gender
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ImageURL != nil {
		set["imageUrl"] = *req.ImageURL
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.AdoptionStatus != nil {
		set["adoptionStatus"] = *req.AdoptionStatus
	}
	if req.AdoptionRequirements != nil {
		set["adoptionRequirements"] = *req.AdoptionRequirements
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.HealthInfo != nil {
		set["healthInfo"] = *req.HealthInfo
	}

	if len(set) == 0 {
		c.JSON(http.StatusOK, pet)
		return
	}
	set["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var updated models.Pet
	err := h.pets.FindOneAndUpdate(
		ctx,
		bson.M{"_id": pet.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		log.Printf("[UpdatePet] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pet"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *PetHandler) DeletePet(c *gin.Context) {
	pet, done := h.loadOwnedPet(c, "delete")
	if done {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.pets.DeleteOne(ctx, bson.M{"_id": pet.ID}); err != nil {
		log.Printf("[DeletePet] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}

// loadOwnedPet resolves the :id pet for a mutation. Not-found is reported
// before ownership is evaluated, so callers can tell "doesn't exist" apart
// from "exists but isn't yours". Returns done=true when a response was
// already written.
func (h *PetHandler) loadOwnedPet(c *gin.Context, verb string) (*models.Pet, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, true
	}

	petID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return nil, true
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var pet models.Pet
	err = h.pets.FindOne(ctx, bson.M{"_id": petID}).Decode(&pet)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		return nil, true
	}
	if err != nil {
		log.Printf("[loadOwnedPet] fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pet"})
		return nil, true
	}

	if !ownsPet(&pet, user.ID.Hex()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to " + verb + " this pet"})
		return nil, true
	}

	return &pet, false
}

// ownsPet compares string-normalized identifiers.
func ownsPet(pet *models.Pet, callerID string) bool {
	return pet.Owner.Hex() == callerID
}
