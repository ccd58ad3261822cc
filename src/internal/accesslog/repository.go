package accesslog

import (
	"context"
	"time"

	"admin-console-svc/src/clients"
	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	Find(ctx context.Context, req *GetLogsRequest) ([]*Entry, int64, error)
	FindSince(ctx context.Context, since time.Time, riskLevels []string) ([]*Entry, error)
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) Insert(ctx context.Context, entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		logrus.WithError(err).WithField("action", entry.Action).Error("Failed to insert access log entry")
		return models.ErrDatabaseInsert
	}

	return nil
}

func (r *repository) Find(ctx context.Context, req *GetLogsRequest) ([]*Entry, int64, error) {
	filter := bson.M{}

	if req.UserID != "" {
		filter["user_id"] = req.UserID
	}

	if req.Action != "" {
		filter["action"] = bson.M{"$regex": req.Action, "$options": "i"}
	}

	if req.RiskLevel != "" {
		filter["risk_level"] = req.RiskLevel
	}

	timeFilter := bson.M{}
	if !req.From.IsZero() {
		timeFilter["$gte"] = req.From
	}
	if !req.To.IsZero() {
		timeFilter["$lte"] = req.To
	}
	if len(timeFilter) > 0 {
		filter["timestamp"] = timeFilter
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to count access logs")
		return nil, 0, models.ErrDatabaseQuery
	}

	skip := (req.Page - 1) * req.Limit

	opts := options.Find().
		SetLimit(int64(req.Limit)).
		SetSkip(int64(skip)).
		SetSort(bson.M{"timestamp": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find access logs")
		return nil, 0, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var entries []*Entry
	for cursor.Next(ctx) {
		var entry Entry
		if err := cursor.Decode(&entry); err != nil {
			logrus.WithError(err).Error("Failed to decode access log entry")
			continue
		}
		entries = append(entries, &entry)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, 0, models.ErrDatabaseQuery
	}

	logrus.WithFields(logrus.Fields{
		"count": len(entries),
		"total": totalCount,
		"page":  req.Page,
	}).Debug("Retrieved access logs successfully")

	return entries, totalCount, nil
}

func (r *repository) FindSince(ctx context.Context, since time.Time, riskLevels []string) ([]*Entry, error) {
	filter := bson.M{
		"timestamp":  bson.M{"$gte": since},
		"risk_level": bson.M{"$in": riskLevels},
	}

	opts := options.Find().SetSort(bson.M{"timestamp": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logrus.WithError(err).Error("Failed to find recent access logs")
		return nil, models.ErrDatabaseQuery
	}
	defer cursor.Close(ctx)

	var entries []*Entry
	for cursor.Next(ctx) {
		var entry Entry
		if err := cursor.Decode(&entry); err != nil {
			logrus.WithError(err).Error("Failed to decode access log entry")
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

func (r *repository) CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	filter := bson.M{
		"user_id":   userID,
		"timestamp": bson.M{"$gte": since},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to count user access logs")
		return 0, models.ErrDatabaseQuery
	}

	return count, nil
}
