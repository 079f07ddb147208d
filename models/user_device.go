package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDevice is a registered push endpoint for a user's phone. The raw
// push token is never stored, only its hash.
type UserDevice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Platform    string             `bson:"platform"` // "android" | "ios"
	TokenHash   string             `bson:"token_hash"`
	EndpointARN string             `bson:"endpoint_arn"`
	Enabled     bool               `bson:"enabled"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}
