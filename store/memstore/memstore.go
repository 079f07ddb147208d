// Package memstore implements store.Store in process memory. It backs the
// test suite and local development without a running MongoDB; semantics
// (set mutations, filters, ordering, unique constraints) mirror mongostore.
package memstore

import (
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

type Store struct {
	mu          sync.RWMutex
	users       map[primitive.ObjectID]models.User
	influencers map[primitive.ObjectID]models.Influencer
	meals       map[primitive.ObjectID]models.Meal
	devices     map[primitive.ObjectID]models.UserDevice
}

func New() *Store {
	return &Store{
		users:       make(map[primitive.ObjectID]models.User),
		influencers: make(map[primitive.ObjectID]models.Influencer),
		meals:       make(map[primitive.ObjectID]models.Meal),
		devices:     make(map[primitive.ObjectID]models.UserDevice),
	}
}

func (s *Store) Users() store.UserStore             { return &userStore{s} }
func (s *Store) Influencers() store.InfluencerStore { return &influencerStore{s} }
func (s *Store) Meals() store.MealStore             { return &mealStore{s} }
func (s *Store) Devices() store.DeviceStore         { return &deviceStore{s} }

// containsID reports set membership in a relationship array.
func containsID(set []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// addToSet returns the set with id inserted once; a duplicate add is a
// no-op.
func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if containsID(set, id) {
		return set
	}
	return append(set, id)
}

// pull returns the set without id; an absent id is a no-op.
func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, v := range set {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func matchesSpecialty(specialty, pattern string) bool {
	if pattern == "" {
		return true
	}
	return strings.Contains(strings.ToLower(specialty), strings.ToLower(pattern))
}

// pageSlice applies skip/limit to an already-sorted result set.
func pageSlice[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}
