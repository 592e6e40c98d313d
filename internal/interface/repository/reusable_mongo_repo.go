package repository

import (
	"context"
	"errors"
	"time"

	"messenger-client/internal/domain/entity"
	"messenger-client/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReusableRepository implements ReusableAttachmentRepository
type MongoReusableRepository struct {
	collection *mongo.Collection
}

// NewMongoReusableRepository creates a new reusable attachment repository
func NewMongoReusableRepository(ctx context.Context, db *mongo.Database) (repository.ReusableAttachmentRepository, error) {
	collection := db.Collection("reusable_attachments")

	// Create unique index on url
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"url": 1},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, err
	}

	return &MongoReusableRepository{
		collection: collection,
	}, nil
}

// Get finds a reusable attachment by URL
func (r *MongoReusableRepository) Get(ctx context.Context, url string) (*entity.ReusableAttachment, error) {
	var record entity.ReusableAttachment
	err := r.collection.FindOne(ctx, bson.M{"url": url}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Save creates or replaces the attachment ID stored for a URL
func (r *MongoReusableRepository) Save(ctx context.Context, attachment *entity.ReusableAttachment) error {
	now := time.Now().UTC()
	attachment.UpdatedAt = now

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"url": attachment.URL}
	update := bson.M{
		"$set": bson.M{
			"attachmentId": attachment.AttachmentID,
			"updatedAt":    attachment.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}
