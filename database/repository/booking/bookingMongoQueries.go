package bookingRepo

import (
	"context"
	"time"

	"servicebook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FindOverlapping returns bookings whose stored interval intersects [start, end).
func (repo *MongoBookingRepo) FindOverlapping(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"professionalId": professionalID,
		"startTime":      bson.M{"$lt": end.UTC()},
		"endTime":        bson.M{"$gt": start.UTC()},
	}
	return repo.find(ctx, filter)
}

// FindByProfessionalAndRange returns a professional's bookings starting in [start, end).
func (repo *MongoBookingRepo) FindByProfessionalAndRange(ctx context.Context, professionalID string, start, end time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"professionalId": professionalID,
		"startTime":      bson.M{"$gte": start.UTC(), "$lt": end.UTC()},
	}
	return repo.find(ctx, filter)
}

// FindByRange returns all bookings starting in [start, end).
func (repo *MongoBookingRepo) FindByRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"startTime": bson.M{"$gte": start.UTC(), "$lt": end.UTC()},
	}
	return repo.find(ctx, filter)
}

// FindByStatusStartingBefore returns bookings in status that started before before.
func (repo *MongoBookingRepo) FindByStatusStartingBefore(ctx context.Context, status models.BookingStatus, before time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"status":    string(status),
		"startTime": bson.M{"$lt": before.UTC()},
	}
	return repo.find(ctx, filter)
}
