package analytics

import (
	"context"
	"time"

	"admin-console-svc/src/clients"
	"admin-console-svc/src/internal/config"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context) (int64, error)
	CountNewUsersSince(ctx context.Context, since time.Time) (int64, error)
	CountActionsSince(ctx context.Context, since time.Time) (int64, error)
	CountActionsByRiskSince(ctx context.Context, riskLevel string, since time.Time) (int64, error)
}

type repository struct {
	users      *mongo.Collection
	accessLogs *mongo.Collection
}

func NewRepository(db *clients.MongoDB, collections *config.Collections) Repository {
	return &repository{
		users:      db.Database.Collection(collections.Users),
		accessLogs: db.Database.Collection(collections.AccessLogs),
	}
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	filter := bson.M{"deleted_at": bson.M{"$exists": false}}
	return r.count(ctx, r.users, filter)
}

func (r *repository) CountActiveUsers(ctx context.Context) (int64, error) {
	filter := bson.M{
		"deleted_at": bson.M{"$exists": false},
		"status":     "active",
	}
	return r.count(ctx, r.users, filter)
}

func (r *repository) CountNewUsersSince(ctx context.Context, since time.Time) (int64, error) {
	filter := bson.M{
		"deleted_at": bson.M{"$exists": false},
		"created_at": bson.M{"$gte": since},
	}
	return r.count(ctx, r.users, filter)
}

func (r *repository) CountActionsSince(ctx context.Context, since time.Time) (int64, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": since}}
	return r.count(ctx, r.accessLogs, filter)
}

func (r *repository) CountActionsByRiskSince(ctx context.Context, riskLevel string, since time.Time) (int64, error) {
	filter := bson.M{
		"risk_level": riskLevel,
		"timestamp":  bson.M{"$gte": since},
	}
	return r.count(ctx, r.accessLogs, filter)
}

func (r *repository) count(ctx context.Context, collection *mongo.Collection, filter bson.M) (int64, error) {
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to count documents")
		return 0, models.ErrDatabaseQuery
	}
	return count, nil
}
