package sysconfig

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
	GetAll(ctx context.Context) ([]*Entry, error)
	GetByKey(ctx context.Context, key string) (*Entry, error)
	Upsert(ctx context.Context, entry *Entry) error
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) GetAll(ctx context.Context) ([]*Entry, error) {
	opts := options.Find().SetSort(bson.M{"key": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find system config entries")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var entries []*Entry
	for cursor.Next(ctx) {
		var entry Entry
		if err := cursor.Decode(&entry); err != nil {
			logrus.WithError(err).Error("Failed to decode system config entry")
			continue
		}
		entries = append(entries, &entry)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, models.ErrDatabaseQuery
	}

	return entries, nil
}

func (r *repository) GetByKey(ctx context.Context, key string) (*Entry, error) {
	var entry Entry
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrConfigKeyNotFound
		}
		logrus.WithError(err).WithField("config_key", key).Error("Failed to get system config entry")
		return nil, models.ErrDatabaseQuery
	}

	return &entry, nil
}

func (r *repository) Upsert(ctx context.Context, entry *Entry) error {
	entry.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"value":      entry.Value,
			"updated_by": entry.UpdatedBy,
			"updated_at": entry.UpdatedAt,
		},
	}
	if entry.Category != "" {
		update["$set"].(bson.M)["category"] = entry.Category
	}
	if entry.Description != "" {
		update["$set"].(bson.M)["description"] = entry.Description
	}

	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"key": entry.Key}, update, opts)
	if err != nil {
		logrus.WithError(err).WithField("config_key", entry.Key).Error("Failed to upsert system config entry")
		return models.ErrDatabaseUpdate
	}

	return nil
}
