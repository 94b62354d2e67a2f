package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexes is the schema the flows rely on. The unique email index is what
// makes duplicate signups fail; there is no find-then-insert check.
var indexes = map[string][]mongo.IndexModel{
	UsersCollection: {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("users_email_unique").SetUnique(true),
		},
	},
	PropertiesCollection: {
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("properties_owner_idx"),
		},
	},
	BookingsCollection: {
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("bookings_user_idx"),
		},
		{
			Keys:    bson.D{{Key: "roomId", Value: 1}, {Key: "startDate", Value: 1}},
			Options: options.Index().SetName("bookings_room_start_idx"),
		},
	},
}

var collectionOrder = []string{UsersCollection, PropertiesCollection, BookingsCollection}

func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for _, name := range collectionOrder {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes[name]); err != nil {
			return fmt.Errorf("db: create indexes on %s: %w", name, err)
		}
	}
	return nil
}
