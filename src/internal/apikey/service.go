package apikey

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"admin-console-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	keyBytes         = 24
	keyPrefixLength  = 8
	defaultRateLimit = 60
)

type Service interface {
	List(ctx context.Context) ([]*APIKey, error)
	Create(ctx context.Context, createdBy string, req *CreateRequest) (*CreateResponse, error)
	Update(ctx context.Context, id string, req *UpdateRequest) (*APIKey, error)
	Delete(ctx context.Context, id string) error
}

type keyService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &keyService{repo: repo}
}

func (s *keyService) List(ctx context.Context) ([]*APIKey, error) {
	keys, err := s.repo.GetAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list api keys")
		return nil, err
	}

	logrus.WithField("count", len(keys)).Debug("Retrieved api keys")
	return keys, nil
}

// Create mints new key material, stores its hash, and returns the plaintext
// exactly once. It cannot be recovered afterwards.
func (s *keyService) Create(ctx context.Context, createdBy string, req *CreateRequest) (*CreateResponse, error) {
	if !isValidTier(req.Tier) {
		return nil, models.ErrInvalidParams
	}

	rateLimit := req.RateLimit
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}

	plaintext, err := generateKey()
	if err != nil {
		logrus.WithError(err).Error("Failed to generate api key material")
		return nil, err
	}

	hash := sha256.Sum256([]byte(plaintext))

	key := &APIKey{
		Name:      req.Name,
		KeyPrefix: plaintext[:keyPrefixLength],
		KeyHash:   hex.EncodeToString(hash[:]),
		Tier:      req.Tier,
		RateLimit: rateLimit,
		IsActive:  true,
		CreatedBy: createdBy,
		ExpiresAt: req.ExpiresAt,
	}

	if err := s.repo.Insert(ctx, key); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"key_id": key.ID.Hex(),
		"name":   key.Name,
		"tier":   key.Tier,
	}).Info("API key created")

	return &CreateResponse{Key: key, Plaintext: plaintext}, nil
}

func (s *keyService) Update(ctx context.Context, id string, req *UpdateRequest) (*APIKey, error) {
	update := bson.M{}

	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Tier != nil {
		if !isValidTier(*req.Tier) {
			return nil, models.ErrInvalidParams
		}
		update["tier"] = *req.Tier
	}
	if req.RateLimit != nil {
		if *req.RateLimit <= 0 {
			return nil, models.ErrInvalidParams
		}
		update["rate_limit"] = *req.RateLimit
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}

	if len(update) == 0 {
		return nil, models.ErrInvalidParams
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	key, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logrus.WithField("key_id", id).Info("API key updated")
	return key, nil
}

func (s *keyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logrus.WithField("key_id", id).Info("API key deleted")
	return nil
}

func generateKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("ak_%s", hex.EncodeToString(buf)), nil
}
