package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"servicebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Get retrieves a booking by its ID.
func (repo *MongoBookingRepo) Get(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var doc bookingDocument
	err := repo.bookingColl.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	b, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Save replaces the booking document, inserting it when absent.
func (repo *MongoBookingRepo) Save(ctx context.Context, booking models.Booking) (models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	doc, err := toDocument(booking)
	if err != nil {
		return models.Booking{}, err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.bookingColl.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return models.Booking{}, fmt.Errorf("error saving booking %s: %w", booking.ID, err)
	}
	return booking.Clone(), nil
}
