package database

import (
	"context"
	"log"
	"time"

	"pawconnect/config"
	"pawconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB bundles the Mongo client with the collection handles the handlers use.
type DB struct {
	Client *mongo.Client
	Users  *mongo.Collection
	Pets   *mongo.Collection
}

func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDatabase)
	users := db.Collection("users")

	// Email uniqueness is enforced by the index; the handler-side lookup only
	// exists to produce a friendlier error message.
	if _, err := users.Indexes().CreateOne(ctx, emailIndex()); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB successfully")
	return &DB{
		Client: client,
		Users:  users,
		Pets:   db.Collection("pets"),
	}, nil
}

func emailIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func (db *DB) Disconnect() error {
	if db.Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.Client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}

// ResolveUser looks up a live user by hex id with the password hash stripped.
// It satisfies middleware.UserResolver; a malformed id is reported the same
// way as a missing document.
func (db *DB) ResolveUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var user models.User
	if err := db.Users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}

	user.Password = nil
	return &user, nil
}

// PetExists reports whether a pet document with the given id is present.
func (db *DB) PetExists(ctx context.Context, petID primitive.ObjectID) (bool, error) {
	count, err := db.Pets.CountDocuments(ctx, bson.M{"_id": petID})
	return count > 0, err
}

func (db *DB) PushFavorite(ctx context.Context, userID, petID primitive.ObjectID) error {
	_, err := db.Users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"favorites": petID}},
	)
	return err
}

// PullFavorite removes the pet from the user's favorite set and reports
// whether anything was actually removed.
func (db *DB) PullFavorite(ctx context.Context, userID, petID primitive.ObjectID) (bool, error) {
	result, err := db.Users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"favorites": petID}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// IncFavoriteCount adjusts the pet's favorite counter. Decrements are guarded
// by the filter so the counter never drops below zero.
func (db *DB) IncFavoriteCount(ctx context.Context, petID primitive.ObjectID, delta int) error {
	_, err := db.Pets.UpdateOne(ctx,
		favoriteCountFilter(petID, delta),
		bson.M{"$inc": bson.M{"favoriteCount": delta}},
	)
	return err
}

func favoriteCountFilter(petID primitive.ObjectID, delta int) bson.M {
	filter := bson.M{"_id": petID}
	if delta < 0 {
		filter["favoriteCount"] = bson.M{"$gt": 0}
	}
	return filter
}

// FavoritePets loads the given pets, newest first.
func (db *DB) FavoritePets(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Pets.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pets := []models.Pet{}
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}
