package contactRepo

import (
	"context"

	"washdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) (string, error)
	List(ctx context.Context, limit int) ([]models.Contact, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo returns a new ContactRepository instance using MongoDB.
func NewMongoContactRepo(db *mongo.Database) ContactRepository {
	return &mongoContactRepo{
		coll: db.Collection("contacts"),
	}
}
