package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/models"
)

// PropertyRepository and BookingRepository are read paths; listings and
// reservations are written by other tooling.
type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(database *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: database.Collection(PropertiesCollection)}
}

func (r *PropertyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db: find property: %w", err)
	}
	return &p, nil
}

type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(database *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: database.Collection(BookingsCollection)}
}

// ListByUser returns a user's bookings, newest stay first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.D{{Key: "userId", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("db: list bookings: %w", err)
	}

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("db: decode bookings: %w", err)
	}
	for i := range bookings {
		bookings[i].Status = bookings[i].StatusOrDefault()
	}
	return bookings, nil
}
