package bookingRepo

import (
	"context"
	"errors"

	"washdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateExtraction is returned by Create when a booking with the same
// extraction key already exists.
var ErrDuplicateExtraction = errors.New("booking for this extraction already exists")

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

type BookingRepository interface {
	// Create assigns the booking id and creation time, inserts the row and
	// returns the id.
	Create(ctx context.Context, booking *models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByExtractionKey(ctx context.Context, key string) (*models.Booking, error)
	List(ctx context.Context, limit int) ([]models.Booking, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a new BookingRepository instance using MongoDB.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
