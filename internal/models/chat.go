package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat transcript roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of a user's conversation with the assistant,
// persisted to MongoDB.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"-"`
	Role      string             `bson:"role" json:"role"` // "user" or "model"
	Text      string             `bson:"text" json:"text"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// SafetyStatus classifies a user message for crisis handling.
type SafetyStatus string

const (
	SafetySafe    SafetyStatus = "SAFE"
	SafetyWarning SafetyStatus = "WARNING"
	SafetyCrisis  SafetyStatus = "CRISIS"
)
