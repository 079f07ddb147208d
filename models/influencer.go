package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Influencer is a 1:1 extension of a User. Followers are not stored here;
// they are derived from the following sets on user documents, so the user
// side stays the single source of truth.
type Influencer struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           primitive.ObjectID `bson:"user_id"`
	Specialty        string             `bson:"specialty,omitempty"`
	SocialMediaLinks string             `bson:"social_media_links,omitempty"` // serialized JSON
	Verified         bool               `bson:"verified"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

// InfluencerPatch enumerates the updatable influencer profile fields.
type InfluencerPatch struct {
	Specialty        *string
	SocialMediaLinks *string // serialized JSON
	Verified         *bool
}

func (p InfluencerPatch) IsZero() bool {
	return p.Specialty == nil && p.SocialMediaLinks == nil && p.Verified == nil
}
