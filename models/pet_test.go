package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPetWithOwnerJSON_ExpandedOwner(t *testing.T) {
	owner := primitive.NewObjectID()
	pet := PetWithOwner{
		Pet:       Pet{ID: primitive.NewObjectID(), Owner: owner, Name: "Rex"},
		OwnerInfo: &PublicUser{ID: owner, Name: "Asha", Email: "asha@example.com"},
	}

	data, err := json.Marshal(pet)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	ownerDoc, ok := doc["owner"].(map[string]interface{})
	require.True(t, ok, "owner should be the expanded user object")
	assert.Equal(t, "Asha", ownerDoc["name"])
	assert.Equal(t, "Rex", doc["name"])
}

func TestPetWithOwnerJSON_MissingOwnerKeepsRawID(t *testing.T) {
	owner := primitive.NewObjectID()
	pet := PetWithOwner{
		Pet: Pet{ID: primitive.NewObjectID(), Owner: owner, Name: "Rex"},
	}

	data, err := json.Marshal(pet)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, owner.Hex(), doc["owner"])
}
