package ledger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vesna/models"
)

// MongoStore backs the ledger with the events and bookings collections.
// The seat decrement is a guarded $inc so that even writers bypassing the
// ledger's locks cannot push available seats below zero.
type MongoStore struct {
	Events   *mongo.Collection
	Bookings *mongo.Collection
}

func NewMongoStore(events, bookings *mongo.Collection) *MongoStore {
	return &MongoStore{Events: events, Bookings: bookings}
}

func (s *MongoStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	err := s.Events.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *MongoStore) FindBooking(ctx context.Context, eventID, userID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.Bookings.FindOne(ctx, bson.M{"eventid": eventID, "userid": userID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *MongoStore) InsertBooking(ctx context.Context, b *models.Booking) error {
	_, err := s.Bookings.InsertOne(ctx, b)
	return err
}

func (s *MongoStore) DeleteBooking(ctx context.Context, bookingID string) error {
	res, err := s.Bookings.DeleteOne(ctx, bson.M{"bookingid": bookingID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *MongoStore) DecrementSeats(ctx context.Context, eventID string, n int) (bool, error) {
	res, err := s.Events.UpdateOne(ctx,
		bson.M{
			"eventid":         eventID,
			"available_seats": bson.M{"$gte": n}, // prevent oversell
		},
		bson.M{
			"$inc": bson.M{"available_seats": -n},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (s *MongoStore) IncrementSeats(ctx context.Context, eventID string, n int) (int, error) {
	var event models.Event
	err := s.Events.FindOneAndUpdate(ctx,
		bson.M{"eventid": eventID},
		bson.M{
			"$inc": bson.M{"available_seats": n},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return 0, ErrEventNotFound
	}
	if err != nil {
		return 0, err
	}
	return event.AvailableSeats, nil
}

func (s *MongoStore) SetCapacity(ctx context.Context, eventID string, total, available int) error {
	res, err := s.Events.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$set": bson.M{
			"total_seats":     total,
			"available_seats": available,
			"updated_at":      time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}
