package handlers

import (
	"testing"

	"pawconnect/models"

	"github.com/stretchr/testify/assert"
)

func TestNewUserDefaults(t *testing.T) {
	user := newUser("Asha", "asha@example.com")

	assert.Equal(t, models.UserTypeBoth, user.UserType)
	assert.Equal(t, "India", user.Location.Country)
	assert.NotNil(t, user.Favorites)
	assert.Empty(t, user.Favorites)
	assert.False(t, user.IsGoogleAuth)
	assert.Nil(t, user.Password)
}

func TestMergeLocation_KeepsDefaultCountry(t *testing.T) {
	base := newUser("Asha", "asha@example.com").Location

	got := mergeLocation(base, models.Location{City: "Pune", State: "Maharashtra"})
	assert.Equal(t, models.Location{City: "Pune", State: "Maharashtra", Country: "India"}, got)
}

func TestMergeLocation_ProvidedCountryWins(t *testing.T) {
	base := newUser("Asha", "asha@example.com").Location

	got := mergeLocation(base, models.Location{City: "Lyon", Country: "France"})
	assert.Equal(t, models.Location{City: "Lyon", Country: "France"}, got)
}
