package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taesko/freefall/internal/domain/entity"
	"github.com/taesko/freefall/internal/domain/repository"
)

// MongoPageArchive implements PageArchive on a MongoDB collection
type MongoPageArchive struct {
	collection *mongo.Collection
}

// NewMongoPageArchive creates the archive and ensures its indexes
func NewMongoPageArchive(ctx context.Context, db *mongo.Database) (repository.PageArchive, error) {
	collection := db.Collection("search_pages")

	// One document per page of a subscription fetch
	pageIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "subscriptionFetchId", Value: 1},
			{Key: "offset", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}

	fetchedAtIndex := mongo.IndexModel{
		Keys: bson.M{"fetchedAt": -1},
	}

	if _, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{pageIndex, fetchedAtIndex}); err != nil {
		return nil, fmt.Errorf("create search_pages indexes: %w", err)
	}

	return &MongoPageArchive{
		collection: collection,
	}, nil
}

// Save stores a raw page. Saving the same page twice keeps the first copy.
func (r *MongoPageArchive) Save(ctx context.Context, page *entity.ArchivedPage) error {
	if page.ID == "" {
		page.ID = primitive.NewObjectID().Hex()
	}
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, page)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("archive page %d/%d: %w", page.SubscriptionFetchID, page.Offset, err)
	}
	return nil
}

// NopPageArchive discards pages. Used when no MongoDB is configured.
type NopPageArchive struct{}

// NewNopPageArchive creates an archive that stores nothing
func NewNopPageArchive() repository.PageArchive {
	return NopPageArchive{}
}

// Save does nothing
func (NopPageArchive) Save(context.Context, *entity.ArchivedPage) error {
	return nil
}
