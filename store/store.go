// Package store defines the persistence contract the entity services are
// built on. The canonical implementation is mongostore; memstore backs the
// tests. Services receive their store handle at construction, there is no
// ambient global connection.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
)

var (
	// ErrNotFound is returned when a document is absent.
	ErrNotFound = errors.New("store: document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("store: duplicate key")
)

// Store bundles the per-collection handles.
type Store interface {
	Users() UserStore
	Influencers() InfluencerStore
	Meals() MealStore
	Devices() DeviceStore
}

// UserStore persists user documents and their relationship sets. The set
// mutations (favorite/follow) are single-document atomic and idempotent:
// adding a present id or removing an absent one is a no-op success.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Apply(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) error
	SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error
	// MarkInfluencer flips is_influencer true. The flag has no inverse
	// transition, so it is not part of UserPatch.
	MarkInfluencer(ctx context.Context, id primitive.ObjectID) error

	AddFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error
	Follow(ctx context.Context, userID, influencerID primitive.ObjectID) error
	Unfollow(ctx context.Context, userID, influencerID primitive.ObjectID) error

	// CountFollowers and Followers answer the inverse relationship by
	// querying the user collection for following-set containment. Counts
	// are recomputed fresh on every call; nothing is cached. An indexed
	// inverse can replace this without touching the service contract.
	CountFollowers(ctx context.Context, influencerID primitive.ObjectID) (int64, error)
	Followers(ctx context.Context, influencerID primitive.ObjectID) ([]models.User, error)
}

// InfluencerFilter narrows and pages an influencer listing. Specialty is a
// case-insensitive substring match when non-empty. Limit 0 means no limit.
// Results are always newest-first by creation time; derived orderings
// (follower count) are applied by the caller.
type InfluencerFilter struct {
	Specialty string
	Skip      int64
	Limit     int64
}

type InfluencerStore interface {
	Insert(ctx context.Context, inf *models.Influencer) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Influencer, error)
	ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Influencer, error)
	Apply(ctx context.Context, id primitive.ObjectID, patch models.InfluencerPatch) error
	// List returns one page plus the total count of the same filtered query.
	List(ctx context.Context, f InfluencerFilter) ([]models.Influencer, int64, error)
	Specialties(ctx context.Context) ([]string, error)
}

// MealFilter narrows and pages a meal listing. Tag is an exact match
// against the tag set. Results are newest-first by creation time.
type MealFilter struct {
	Tag          string
	InfluencerID *primitive.ObjectID
	Skip         int64
	Limit        int64
}

type MealStore interface {
	Insert(ctx context.Context, m *models.Meal) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error)
	Apply(ctx context.Context, id primitive.ObjectID, patch models.MealPatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, f MealFilter) ([]models.Meal, int64, error)
}

type DeviceStore interface {
	// Upsert inserts the device or refreshes the endpoint of an existing
	// (user, token hash) pair.
	Upsert(ctx context.Context, d *models.UserDevice) error
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserDevice, error)
}
