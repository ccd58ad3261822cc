package sysconfig

import "time"

// Entry is one keyed system setting.
type Entry struct {
	Key         string    `json:"key" bson:"key"`
	Value       string    `json:"value" bson:"value"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

type UpdateRequest struct {
	Value       string `json:"value" binding:"required"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}
