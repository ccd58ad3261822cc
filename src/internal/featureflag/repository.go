package featureflag

import (
	"context"
	"errors"
	"time"

	"admin-console-svc/src/clients"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*FeatureFlag, error)
	GetByKey(ctx context.Context, key string) (*FeatureFlag, error)
	Update(ctx context.Context, key string, update bson.M) error
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) GetAll(ctx context.Context) ([]*FeatureFlag, error) {
	opts := options.Find().SetSort(bson.M{"key": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find feature flags")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var flags []*FeatureFlag
	for cursor.Next(ctx) {
		var flag FeatureFlag
		if err := cursor.Decode(&flag); err != nil {
			logrus.WithError(err).Error("Failed to decode feature flag")
			continue
		}
		flags = append(flags, &flag)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return flags, nil
}

func (r *repository) GetByKey(ctx context.Context, key string) (*FeatureFlag, error) {
	var flag FeatureFlag
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&flag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrFeatureFlagNotFound
		}
		logrus.WithError(err).WithField("flag_key", key).Error("Failed to get feature flag")
		return nil, models.ErrDatabaseQuery
	}

	return &flag, nil
}

func (r *repository) Update(ctx context.Context, key string, update bson.M) error {
	update["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"key": key}, bson.M{"$set": update})
	if err != nil {
		logrus.WithError(err).WithField("flag_key", key).Error("Failed to update feature flag")
		return models.ErrDatabaseUpdate
	}

	if result.MatchedCount == 0 {
		return models.ErrFeatureFlagNotFound
	}

	return nil
}
