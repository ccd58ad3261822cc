package apikey

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tier constants
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// APIKey is the stored record. The full key material is never persisted,
// only its hash and a displayable prefix.
type APIKey struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	KeyPrefix  string             `json:"keyPrefix" bson:"key_prefix"`
	KeyHash    string             `json:"-" bson:"key_hash"`
	Tier       string             `json:"tier" bson:"tier"`
	RateLimit  int                `json:"rateLimit" bson:"rate_limit"`
	IsActive   bool               `json:"isActive" bson:"is_active"`
	CreatedBy  string             `json:"createdBy" bson:"created_by"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updated_at"`
	LastUsedAt *time.Time         `json:"lastUsedAt,omitempty" bson:"last_used_at,omitempty"`
	ExpiresAt  *time.Time         `json:"expiresAt,omitempty" bson:"expires_at,omitempty"`
}

type CreateRequest struct {
	Name      string     `json:"name" binding:"required"`
	Tier      string     `json:"tier" binding:"required"`
	RateLimit int        `json:"rateLimit"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// CreateResponse carries the plaintext key exactly once, at creation time.
type CreateResponse struct {
	Key       *APIKey `json:"key"`
	Plaintext string  `json:"plaintext"`
}

type UpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Tier      *string `json:"tier,omitempty"`
	RateLimit *int    `json:"rateLimit,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

func isValidTier(tier string) bool {
	switch tier {
	case TierFree, TierPro, TierEnterprise:
		return true
	}
	return false
}
