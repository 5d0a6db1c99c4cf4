package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Adoption statuses. Transitions are unconstrained: the owner may set any
// value at any time.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusAdopted   = "adopted"
)

type HealthInfo struct {
	Vaccinated     bool   `bson:"vaccinated" json:"vaccinated"`
	Neutered       bool   `bson:"neutered" json:"neutered"`
	MedicalHistory string `bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
}

type Pet struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner                primitive.ObjectID `bson:"owner" json:"owner"`
	Name                 string             `bson:"name" json:"name"`
	Type                 string             `bson:"type" json:"type"`
	Breed                string             `bson:"breed" json:"breed"`
	Age                  int                `bson:"age" json:"age"`
	Size                 string             `bson:"size,omitempty" json:"size,omitempty"`
	Color                string             `bson:"color,omitempty" json:"color,omitempty"`
	Gender               string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Description          string             `bson:"description" json:"description"`
	ImageURL             string             `bson:"imageUrl" json:"imageUrl"`
	Images               []string           `bson:"images" json:"images"`
	Location             Location           `bson:"location" json:"location"`
	AdoptionStatus       string             `bson:"adoptionStatus" json:"adoptionStatus"`
	AdoptionRequirements string             `bson:"adoptionRequirements,omitempty" json:"adoptionRequirements,omitempty"`
	Tags                 []string           `bson:"tags" json:"tags"`
	HealthInfo           HealthInfo         `bson:"healthInfo" json:"healthInfo"`
	Reviews              []Review           `bson:"reviews" json:"reviews"`
	Views                int64              `bson:"views" json:"views"`
	FavoriteCount        int64              `bson:"favoriteCount" json:"favoriteCount"`
	PendingRequests      int64              `bson:"pendingRequests" json:"pendingRequests"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PetWithOwner is the read-side projection with the owner reference expanded.
// OwnerInfo shadows the raw owner id in the JSON output, so clients see a
// single "owner" object with the public user fields.
type PetWithOwner struct {
	Pet       `bson:",inline"`
	OwnerInfo *PublicUser `bson:"ownerInfo" json:"owner,omitempty"`
}

// MarshalJSON keeps the raw owner id in place when the reference did not
// expand, so the owner field is never absent from a listing.
func (p PetWithOwner) MarshalJSON() ([]byte, error) {
	if p.OwnerInfo == nil {
		return json.Marshal(p.Pet)
	}
	type petWithOwner PetWithOwner
	return json.Marshal(petWithOwner(p))
}
