package contactRepo

import (
	"context"
	"fmt"
	"time"

	"washdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new contact message and returns its ID.
func (r *mongoContactRepo) Create(ctx context.Context, contact *models.Contact) (string, error) {
	contact.ID = uuid.New().String()
	contact.CreatedAt = time.Now().UTC()
	if contact.Status == "" {
		contact.Status = models.ContactStatusNew
	}

	if _, err := r.coll.InsertOne(ctx, contact); err != nil {
		contact.ID = ""
		return "", fmt.Errorf("insert contact: %w", err)
	}
	return contact.ID, nil
}

// List returns the newest contact messages first.
func (r *mongoContactRepo) List(ctx context.Context, limit int) ([]models.Contact, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// EnsureIndexes creates the necessary indexes on the contacts collection.
func (r *mongoContactRepo) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create contact indexes: %w", err)
	}
	return nil
}
