package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"pawconnect/config"
	"pawconnect/database"
	"pawconnect/middleware"
	"pawconnect/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users *mongo.Collection
	cfg   *config.Config
}

func NewAuthHandler(db *database.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: db.Users, cfg: cfg}
}

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Phone    string          `json:"phone"`
	Bio      string          `json:"bio"`
	UserType string          `json:"userType" binding:"omitempty,oneof=adopter pet_owner both"`
	Location models.Location `json:"location"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := h.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user := newUser(req.Name, req.Email)
	user.Password = &hashed
	user.Bio = req.Bio
	user.Location = mergeLocation(user.Location, req.Location)
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.UserType != "" {
		user.UserType = req.UserType
	}

	if _, err := h.users.InsertOne(ctx, user); err != nil {
		// A concurrent registration can slip past the lookup above; the
		// unique email index catches it here.
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
			return
		}
		log.Printf("[Register] insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := middleware.GenerateToken(h.cfg.JWTSecret, user.ID.Hex(), h.cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"userId":  user.ID.Hex(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := h.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// External-auth accounts have no password hash to compare against.
	if user.Password == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := middleware.GenerateToken(h.cfg.JWTSecret, user.ID.Hex(), h.cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"userId":  user.ID.Hex(),
	})
}

// Profile returns the caller's own record; the password hash is stripped by
// the auth middleware before the user reaches the context.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name           *string          `json:"name"`
	Phone          *string          `json:"phone"`
	Bio            *string          `json:"bio"`
	ProfilePicture *string          `json:"profilePicture"`
	Location       *models.Location `json:"location"`
	UserType       *string          `json:"userType" binding:"omitempty,oneof=adopter pet_owner both"`
}

// UpdateProfile applies a partial update; email and password are not mutable
// through this endpoint.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.ProfilePicture != nil {
		set["profilePicture"] = *req.ProfilePicture
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.UserType != nil {
		set["userType"] = *req.UserType
	}

	if len(set) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No changes to update"})
		return
	}
	set["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		log.Printf("[UpdateProfile] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

type GoogleAuthRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// GoogleAuth signs a caller in with a Google ID token. The first external
// login creates the account with no password hash and the external-auth flag
// set.
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, _, err := new(jwt.Parser).ParseUnverified(req.Credential, jwt.MapClaims{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google credential"})
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Google credential"})
		return
	}

	email := stringClaim(claims, "email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email not provided by Google"})
		return
	}
	name := stringClaim(claims, "name")
	picture := stringClaim(claims, "picture")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err = h.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	isNewUser := err == mongo.ErrNoDocuments

	switch {
	case isNewUser:
		user = newUser(name, email)
		user.IsGoogleAuth = true
		if picture != "" {
			user.ProfilePicture = &picture
		}
		if user.Name == "" {
			user.Name = email
		}
		if _, err := h.users.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
				return
			}
			log.Printf("[GoogleAuth] insert failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	default:
		update := bson.M{"isGoogleAuth": true, "updatedAt": time.Now()}
		if user.ProfilePicture == nil && picture != "" {
			update["profilePicture"] = picture
		}
		if _, err := h.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
			log.Printf("[GoogleAuth] update failed: %v", err)
		}
	}

	signed, err := middleware.GenerateToken(h.cfg.JWTSecret, user.ID.Hex(), h.cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Authentication successful",
		"token":     signed,
		"userId":    user.ID.Hex(),
		"isNewUser": isNewUser,
	})
}

// newUser builds a user document with every field initialized.
func newUser(name, email string) models.User {
	now := time.Now()
	return models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Location:  models.Location{Country: "India"},
		UserType:  models.UserTypeBoth,
		Favorites: []primitive.ObjectID{},
		Ratings:   models.Ratings{Reviews: []models.Review{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// mergeLocation overlays the provided location onto the account defaults; an
// absent country keeps the default rather than clearing it.
func mergeLocation(base, in models.Location) models.Location {
	base.City = in.City
	base.State = in.State
	if in.Country != "" {
		base.Country = in.Country
	}
	return base
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
