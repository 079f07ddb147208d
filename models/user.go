package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a platform account. The two relationship sets live on the user
// document: favorites and follows are arrays of foreign ids with set
// semantics (no duplicates, no order).
type User struct {
	ID                     primitive.ObjectID   `bson:"_id,omitempty"`
	Username               string               `bson:"username"`
	Email                  string               `bson:"email"`
	PasswordHash           string               `bson:"password_hash"`
	Name                   string               `bson:"name,omitempty"`
	Bio                    string               `bson:"bio,omitempty"`
	Height                 *float64             `bson:"height,omitempty"`
	Weight                 *float64             `bson:"weight,omitempty"`
	Age                    *int                 `bson:"age,omitempty"`
	ActivityLevel          string               `bson:"activity_level,omitempty"`
	DietaryPreferences     []string             `bson:"dietary_preferences"`
	IsInfluencer           bool                 `bson:"is_influencer"`
	FavoriteMealIDs        []primitive.ObjectID `bson:"favorite_meal_ids"`
	FollowingInfluencerIDs []primitive.ObjectID `bson:"following_influencer_ids"`
	CreatedAt              time.Time            `bson:"created_at"`
	UpdatedAt              time.Time            `bson:"updated_at"`
}

// UserPatch enumerates the profile fields a user may update. Nil leaves a
// field alone. The credential, the uniqueness-constrained identity fields
// and the influencer flag are deliberately not patchable here.
type UserPatch struct {
	Name               *string
	Bio                *string
	Height             *float64
	Weight             *float64
	Age                *int
	ActivityLevel      *string
	DietaryPreferences *[]string
}

// IsZero reports whether the patch carries no changes.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.Bio == nil && p.Height == nil && p.Weight == nil &&
		p.Age == nil && p.ActivityLevel == nil && p.DietaryPreferences == nil
}
