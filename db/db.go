package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	EventsCollection    *mongo.Collection
	BookingsCollection  *mongo.Collection
	TagsCollection      *mongo.Collection
	LikesCollection     *mongo.Collection
	BookmarksCollection *mongo.Collection
	CommentsCollection  *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("eventdb")
	UserCollection = database.Collection("users")
	EventsCollection = database.Collection("events")
	BookingsCollection = database.Collection("bookings")
	TagsCollection = database.Collection("tags")
	LikesCollection = database.Collection("likes")
	BookmarksCollection = database.Collection("bookmarks")
	CommentsCollection = database.Collection("comments")

	ensureIndexes()
}

// Uniqueness the handlers rely on: one booking per (event,user), one
// like/bookmark per (event,user), tag names deduplicated case-insensitively
// (names are stored lowercased).
func ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pair := bson.D{{Key: "eventid", Value: 1}, {Key: "userid", Value: 1}}
	unique := options.Index().SetUnique(true)

	_, err := BookingsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: pair, Options: unique})
	if err != nil {
		log.Printf("bookings index: %v", err)
	}
	_, err = LikesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: pair, Options: unique})
	if err != nil {
		log.Printf("likes index: %v", err)
	}
	_, err = BookmarksCollection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: pair, Options: unique})
	if err != nil {
		log.Printf("bookmarks index: %v", err)
	}
	_, err = TagsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		log.Printf("tags index: %v", err)
	}
}
