package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account kinds.
const (
	UserTypeAdopter  = "adopter"
	UserTypePetOwner = "pet_owner"
	UserTypeBoth     = "both"
)

type Location struct {
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// Review is embedded both in a user's ratings and in a pet's review list.
type Review struct {
	Reviewer  primitive.ObjectID `bson:"reviewer" json:"reviewer"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Ratings struct {
	Average float64  `bson:"average" json:"average"`
	Count   int      `bson:"count" json:"count"`
	Reviews []Review `bson:"reviews" json:"reviews"`
}

type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Email          string               `bson:"email" json:"email"`
	Password       *string              `bson:"password,omitempty" json:"-"`
	Phone          *string              `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfilePicture *string              `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Bio            string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Location       Location             `bson:"location" json:"location"`
	UserType       string               `bson:"userType" json:"userType"`
	Favorites      []primitive.ObjectID `bson:"favorites" json:"favorites"`
	Ratings        Ratings              `bson:"ratings" json:"ratings"`
	IsGoogleAuth   bool                 `bson:"isGoogleAuth" json:"isGoogleAuth"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the owner subset exposed when a pet's owner reference is
// expanded on reads: never the password hash, never the favorites set.
type PublicUser struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          *string            `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfilePicture *string            `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Location       Location           `bson:"location" json:"location"`
	Ratings        Ratings            `bson:"ratings" json:"ratings"`
}

// Public projects the user down to the fields safe to embed in listings.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		Location:       u.Location,
		Ratings:        u.Ratings,
	}
}
