package apikey

import (
	"context"
	"errors"
	"time"

	"admin-console-svc/src/clients"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*APIKey, error)
	GetByID(ctx context.Context, id string) (*APIKey, error)
	Insert(ctx context.Context, key *APIKey) error
	Update(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) GetAll(ctx context.Context) ([]*APIKey, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find api keys")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var keys []*APIKey
	for cursor.Next(ctx) {
		var key APIKey
		if err := cursor.Decode(&key); err != nil {
			logrus.WithError(err).Error("Failed to decode api key")
			continue
		}
		keys = append(keys, &key)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return keys, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*APIKey, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidParams
	}

	var key APIKey
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&key)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrAPIKeyNotFound
		}
		logrus.WithError(err).WithField("key_id", id).Error("Failed to get api key")
		return nil, models.ErrDatabaseQuery
	}

	return &key, nil
}

func (r *repository) Insert(ctx context.Context, key *APIKey) error {
	now := time.Now()
	key.CreatedAt = now
	key.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, key)
	if err != nil {
		logrus.WithError(err).WithField("name", key.Name).Error("Failed to insert api key")
		return models.ErrDatabaseInsert
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		key.ID = oid
	}

	return nil
}

func (r *repository) Update(ctx context.Context, id string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidParams
	}

	update["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		logrus.WithError(err).WithField("key_id", id).Error("Failed to update api key")
		return models.ErrDatabaseUpdate
	}

	if result.MatchedCount == 0 {
		return models.ErrAPIKeyNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidParams
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		logrus.WithError(err).WithField("key_id", id).Error("Failed to delete api key")
		return models.ErrDatabaseDelete
	}

	if result.DeletedCount == 0 {
		return models.ErrAPIKeyNotFound
	}

	return nil
}
