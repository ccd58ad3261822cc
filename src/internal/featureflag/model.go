package featureflag

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeatureFlag is the stored flag record. At most one record exists per Key.
type FeatureFlag struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Key            string             `json:"key" bson:"key"`
	Name           string             `json:"name" bson:"name"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	IsEnabled      bool               `json:"isEnabled" bson:"is_enabled"`
	RolloutPercent int                `json:"rolloutPercent" bson:"rollout_percent"`
	UpdatedBy      string             `json:"updatedBy,omitempty" bson:"updated_by,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}

type UpdateRequest struct {
	IsEnabled      *bool   `json:"isEnabled,omitempty"`
	RolloutPercent *int    `json:"rolloutPercent,omitempty"`
	Description    *string `json:"description,omitempty"`
}

type BulkUpdateItem struct {
	Key       string `json:"key" binding:"required"`
	IsEnabled bool   `json:"isEnabled"`
}

type BulkUpdateRequest struct {
	Flags []BulkUpdateItem `json:"flags" binding:"required"`
}

type BulkUpdateResponse struct {
	Updated int      `json:"updated"`
	Failed  []string `json:"failed,omitempty"`
}
