package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"washdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking. Any id set by the caller is overwritten.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) (string, error) {
	booking.ID = uuid.New().String()
	booking.CreatedAt = time.Now().UTC()
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) && booking.ExtractionKey != "" {
			booking.ID = ""
			return "", ErrDuplicateExtraction
		}
		booking.ID = ""
		return "", fmt.Errorf("insert booking: %w", err)
	}
	return booking.ID, nil
}

// GetByID returns a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByExtractionKey returns the booking created from a chat extraction.
func (r *mongoBookingRepo) GetByExtractionKey(ctx context.Context, key string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"extractionKey": key})
}

func (r *mongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns the newest bookings first.
func (r *mongoBookingRepo) List(ctx context.Context, limit int) ([]models.Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
