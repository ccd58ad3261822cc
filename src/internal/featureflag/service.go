package featureflag

import (
	"context"

	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

type Service interface {
	List(ctx context.Context) ([]*FeatureFlag, error)
	Update(ctx context.Context, key, updatedBy string, req *UpdateRequest) (*FeatureFlag, error)
	BulkUpdate(ctx context.Context, updatedBy string, req *BulkUpdateRequest) (*BulkUpdateResponse, error)
}

type flagService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &flagService{repo: repo}
}

func (s *flagService) List(ctx context.Context) ([]*FeatureFlag, error) {
	flags, err := s.repo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list feature flags")
		return nil, err
	}

	logrus.WithField("count", len(flags)).Debug("Retrieved feature flags")
	return flags, nil
}

func (s *flagService) Update(ctx context.Context, key, updatedBy string, req *UpdateRequest) (*FeatureFlag, error) {
	update := bson.M{"updated_by": updatedBy}

	if req.IsEnabled != nil {
		update["is_enabled"] = *req.IsEnabled
	}
	if req.RolloutPercent != nil {
		if *req.RolloutPercent < 0 || *req.RolloutPercent > 100 {
			return nil, models.ErrInvalidParams
		}
		update["rollout_percent"] = *req.RolloutPercent
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}

	if len(update) == 1 {
		return nil, models.ErrInvalidParams
	}

	if err := s.repo.Update(ctx, key, update); err != nil {
		return nil, err
	}

	flag, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"flag_key":   key,
		"updated_by": updatedBy,
	}).Info("Feature flag updated")

	return flag, nil
}

// BulkUpdate toggles many flags in one call. Failures are collected per key;
// one bad key does not abort the rest.
func (s *flagService) BulkUpdate(ctx context.Context, updatedBy string, req *BulkUpdateRequest) (*BulkUpdateResponse, error) {
	if len(req.Flags) == 0 {
		return nil, models.ErrInvalidParams
	}

	response := &BulkUpdateResponse{}

	for _, item := range req.Flags {
		update := bson.M{
			"is_enabled": item.IsEnabled,
			"updated_by": updatedBy,
		}

		if err := s.repo.Update(ctx, item.Key, update); err != nil {
			logrus.WithError(err).WithField("flag_key", item.Key).Warn("Bulk update failed for flag")
			response.Failed = append(response.Failed, item.Key)
			continue
		}
		response.Updated++
	}

	logrus.WithFields(logrus.Fields{
		"updated": response.Updated,
		"failed":  len(response.Failed),
	}).Info("Feature flags bulk updated")

	return response, nil
}
