package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawconnect/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubFavoriteStore records every mutation so tests can assert which writes
// the handler issued.
type stubFavoriteStore struct {
	petExists bool
	removed   bool
	pets      []models.Pet

	pushes []primitive.ObjectID
	pulls  []primitive.ObjectID
	incs   []int
}

func (s *stubFavoriteStore) PetExists(_ context.Context, _ primitive.ObjectID) (bool, error) {
	return s.petExists, nil
}

func (s *stubFavoriteStore) PushFavorite(_ context.Context, _, petID primitive.ObjectID) error {
	s.pushes = append(s.pushes, petID)
	return nil
}

func (s *stubFavoriteStore) PullFavorite(_ context.Context, _, petID primitive.ObjectID) (bool, error) {
	s.pulls = append(s.pulls, petID)
	return s.removed, nil
}

func (s *stubFavoriteStore) IncFavoriteCount(_ context.Context, _ primitive.ObjectID, delta int) error {
	s.incs = append(s.incs, delta)
	return nil
}

func (s *stubFavoriteStore) FavoritePets(_ context.Context, _ []primitive.ObjectID) ([]models.Pet, error) {
	return s.pets, nil
}

func favoriteRouter(store FavoriteStore, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := &FavoriteHandler{store: store}

	router := gin.New()
	router.POST("/pets/:id/favorite", withTestUser(user), handler.AddFavorite)
	router.DELETE("/pets/:id/favorite", withTestUser(user), handler.RemoveFavorite)
	router.GET("/pets/favorites", withTestUser(user), handler.ListFavorites)
	return router
}

func favoriteTestUser(favorites ...primitive.ObjectID) *models.User {
	if favorites == nil {
		favorites = []primitive.ObjectID{}
	}
	return &models.User{ID: primitive.NewObjectID(), Name: "Asha", Favorites: favorites}
}

func TestAddFavorite_PushesAndIncrements(t *testing.T) {
	store := &stubFavoriteStore{petExists: true}
	petID := primitive.NewObjectID()
	router := favoriteRouter(store, favoriteTestUser())

	rec := postJSON(router, "/pets/"+petID.Hex()+"/favorite", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.pushes, 1)
	assert.Equal(t, petID, store.pushes[0])
	assert.Equal(t, []int{1}, store.incs)
}

func TestAddFavorite_DuplicateIsRejectedWithoutWrites(t *testing.T) {
	store := &stubFavoriteStore{petExists: true}
	petID := primitive.NewObjectID()
	router := favoriteRouter(store, favoriteTestUser(petID))

	rec := postJSON(router, "/pets/"+petID.Hex()+"/favorite", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, store.pushes)
	assert.Empty(t, store.incs, "duplicate add must not touch the counter")
}

func TestAddFavorite_UnknownPetIsNotFound(t *testing.T) {
	store := &stubFavoriteStore{petExists: false}
	router := favoriteRouter(store, favoriteTestUser())

	rec := postJSON(router, "/pets/"+primitive.NewObjectID().Hex()+"/favorite", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.pushes)
	assert.Empty(t, store.incs)
}

func TestAddFavorite_MalformedIDIsNotFound(t *testing.T) {
	store := &stubFavoriteStore{petExists: true}
	router := favoriteRouter(store, favoriteTestUser())

	rec := postJSON(router, "/pets/not-a-hex-id/favorite", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveFavorite_Decrements(t *testing.T) {
	store := &stubFavoriteStore{petExists: true, removed: true}
	petID := primitive.NewObjectID()
	router := favoriteRouter(store, favoriteTestUser(petID))

	rec := postJSONMethod(router, "DELETE", "/pets/"+petID.Hex()+"/favorite", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.pulls, 1)
	assert.Equal(t, []int{-1}, store.incs)
}

func TestRemoveFavorite_AbsentSucceedsWithoutDecrement(t *testing.T) {
	store := &stubFavoriteStore{petExists: true, removed: false}
	petID := primitive.NewObjectID()
	router := favoriteRouter(store, favoriteTestUser())

	rec := postJSONMethod(router, "DELETE", "/pets/"+petID.Hex()+"/favorite", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.incs, "nothing was removed, so the counter must not move")
}

func TestRemoveFavorite_UnknownPetIsNotFound(t *testing.T) {
	store := &stubFavoriteStore{petExists: false}
	router := favoriteRouter(store, favoriteTestUser())

	rec := postJSONMethod(router, "DELETE", "/pets/"+primitive.NewObjectID().Hex()+"/favorite", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.pulls)
}

func TestListFavorites_EmptySetSkipsTheStore(t *testing.T) {
	store := &stubFavoriteStore{}
	router := favoriteRouter(store, favoriteTestUser())

	req := httptest.NewRequest("GET", "/pets/favorites", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
