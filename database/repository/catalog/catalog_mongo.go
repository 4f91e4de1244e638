package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicebook/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type serviceDocument struct {
	ID              string               `bson:"_id"`
	Name            string               `bson:"name"`
	DurationMinutes int                  `bson:"durationMinutes"`
	BasePrice       primitive.Decimal128 `bson:"basePrice"`
	Addons          []addonDocument      `bson:"addons"`
}

type addonDocument struct {
	ID    string               `bson:"id"`
	Name  string               `bson:"name"`
	Price primitive.Decimal128 `bson:"price"`
}

// professionalDocument holds the fields of a professional the engine reads.
// Weekday keys are time.Weekday names, e.g. "Monday".
type professionalDocument struct {
	ID           string              `bson:"_id"`
	WorkingHours map[string]DayHours `bson:"workingHours,omitempty"`
}

// MongoCatalogRepo implements CatalogLookup and ScheduleLookup using MongoDB.
type MongoCatalogRepo struct {
	serviceColl      *mongo.Collection
	professionalColl *mongo.Collection
	timeout          time.Duration
}

func NewMongoCatalogRepo(db *mongo.Database) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		serviceColl:      db.Collection("services"),
		professionalColl: db.Collection("professionals"),
		timeout:          5 * time.Second,
	}
}

func (repo *MongoCatalogRepo) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var doc serviceDocument
	err := repo.serviceColl.FindOne(ctx, bson.M{"_id": serviceID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching service %s: %w", serviceID, err)
	}
	return serviceFromDocument(doc)
}

func (repo *MongoCatalogRepo) ProfessionalExists(ctx context.Context, professionalID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	n, err := repo.professionalColl.CountDocuments(ctx, bson.M{"_id": professionalID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking professional %s: %w", professionalID, err)
	}
	return n > 0, nil
}

func (repo *MongoCatalogRepo) WorkingHours(ctx context.Context, professionalID string, day time.Time) (*models.WorkingHours, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	var doc professionalDocument
	opts := options.FindOne().SetProjection(bson.M{"workingHours": 1})
	err := repo.professionalColl.FindOne(ctx, bson.M{"_id": professionalID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching working hours for %s: %w", professionalID, err)
	}
	hours, ok := doc.WorkingHours[day.Weekday().String()]
	if !ok {
		return nil, nil
	}
	return hours.On(day)
}

func serviceFromDocument(doc serviceDocument) (*models.Service, error) {
	base, err := decimal.NewFromString(doc.BasePrice.String())
	if err != nil {
		return nil, fmt.Errorf("service %s base price: %w", doc.ID, err)
	}
	addons := make([]models.ServiceAddon, 0, len(doc.Addons))
	for _, a := range doc.Addons {
		price, err := decimal.NewFromString(a.Price.String())
		if err != nil {
			return nil, fmt.Errorf("service %s addon %s price: %w", doc.ID, a.ID, err)
		}
		addons = append(addons, models.ServiceAddon{ID: a.ID, Name: a.Name, Price: price})
	}
	return &models.Service{
		ID:              doc.ID,
		Name:            doc.Name,
		DurationMinutes: doc.DurationMinutes,
		BasePrice:       base,
		Addons:          addons,
	}, nil
}
