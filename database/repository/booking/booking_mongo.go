package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"servicebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingsCollection = "bookings"

// MongoBookingRepo implements BookingStore using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	timeout     time.Duration
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl: db.Collection(bookingsCollection),
		timeout:     5 * time.Second,
	}
}

// EnsureIndexes creates the indexes backing the overlap and range queries.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Overlap checks and a professional's calendar.
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "startTime", Value: 1}, {Key: "endTime", Value: 1}},
			Options: options.Index().SetName("professional_start_end_idx"),
		},
		// Reminder sweep.
		{
			Keys:    bson.D{{Key: "startTime", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("start_status_idx"),
		},
		// Expiry sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("status_start_idx"),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "startTime", Value: -1}},
			Options: options.Index().SetName("customer_start_idx"),
		},
	}

	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(docs))
	for _, d := range docs {
		b, err := fromDocument(d)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
