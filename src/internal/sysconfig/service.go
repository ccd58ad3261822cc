package sysconfig

import (
	"context"

	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

type Service interface {
	GetConfig(ctx context.Context) ([]*Entry, error)
	UpdateConfig(ctx context.Context, key, updatedBy string, req *UpdateRequest) (*Entry, error)
}

type configService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &configService{repo: repo}
}

func (s *configService) GetConfig(ctx context.Context) ([]*Entry, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to get system config")
		return nil, err
	}

	logrus.WithField("count", len(entries)).Debug("Retrieved system config")
	return entries, nil
}

func (s *configService) UpdateConfig(ctx context.Context, key, updatedBy string, req *UpdateRequest) (*Entry, error) {
	if key == "" || req.Value == "" {
		return nil, models.ErrInvalidParams
	}

	entry := &Entry{
		Key:         key,
		Value:       req.Value,
		Category:    req.Category,
		Description: req.Description,
		UpdatedBy:   updatedBy,
	}

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"config_key": key,
		"updated_by": updatedBy,
	}).Info("System config updated")

	return s.repo.GetByKey(ctx, key)
}
