package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

type userStore struct {
	s *Store
}

func (u *userStore) Insert(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	u.s.users[user.ID] = *user
	return nil
}

func (u *userStore) ByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(user), nil
}

func (u *userStore) ByUsername(_ context.Context, username string) (*models.User, error) {
	return u.find(func(user models.User) bool { return user.Username == username })
}

func (u *userStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	return u.find(func(user models.User) bool { return user.Email == email })
}

func (u *userStore) find(match func(models.User) bool) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if match(user) {
			return cloneUser(user), nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *userStore) Apply(_ context.Context, id primitive.ObjectID, patch models.UserPatch) error {
	return u.mutate(id, func(user *models.User) {
		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Bio != nil {
			user.Bio = *patch.Bio
		}
		if patch.Height != nil {
			h := *patch.Height
			user.Height = &h
		}
		if patch.Weight != nil {
			w := *patch.Weight
			user.Weight = &w
		}
		if patch.Age != nil {
			a := *patch.Age
			user.Age = &a
		}
		if patch.ActivityLevel != nil {
			user.ActivityLevel = *patch.ActivityLevel
		}
		if patch.DietaryPreferences != nil {
			user.DietaryPreferences = append([]string(nil), *patch.DietaryPreferences...)
		}
		user.UpdatedAt = time.Now().UTC()
	})
}

func (u *userStore) SetPasswordHash(_ context.Context, id primitive.ObjectID, hash string) error {
	return u.mutate(id, func(user *models.User) {
		user.PasswordHash = hash
		user.UpdatedAt = time.Now().UTC()
	})
}

func (u *userStore) MarkInfluencer(_ context.Context, id primitive.ObjectID) error {
	return u.mutate(id, func(user *models.User) {
		user.IsInfluencer = true
		user.UpdatedAt = time.Now().UTC()
	})
}

func (u *userStore) AddFavorite(_ context.Context, userID, mealID primitive.ObjectID) error {
	return u.mutate(userID, func(user *models.User) {
		user.FavoriteMealIDs = addToSet(user.FavoriteMealIDs, mealID)
	})
}

func (u *userStore) RemoveFavorite(_ context.Context, userID, mealID primitive.ObjectID) error {
	return u.mutate(userID, func(user *models.User) {
		user.FavoriteMealIDs = pull(user.FavoriteMealIDs, mealID)
	})
}

func (u *userStore) Follow(_ context.Context, userID, influencerID primitive.ObjectID) error {
	return u.mutate(userID, func(user *models.User) {
		user.FollowingInfluencerIDs = addToSet(user.FollowingInfluencerIDs, influencerID)
	})
}

func (u *userStore) Unfollow(_ context.Context, userID, influencerID primitive.ObjectID) error {
	return u.mutate(userID, func(user *models.User) {
		user.FollowingInfluencerIDs = pull(user.FollowingInfluencerIDs, influencerID)
	})
}

func (u *userStore) mutate(id primitive.ObjectID, fn func(*models.User)) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	clone := cloneUser(user)
	fn(clone)
	u.s.users[id] = *clone
	return nil
}

func (u *userStore) CountFollowers(_ context.Context, influencerID primitive.ObjectID) (int64, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	var n int64
	for _, user := range u.s.users {
		if containsID(user.FollowingInfluencerIDs, influencerID) {
			n++
		}
	}
	return n, nil
}

func (u *userStore) Followers(_ context.Context, influencerID primitive.ObjectID) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	var out []models.User
	for _, user := range u.s.users {
		if containsID(user.FollowingInfluencerIDs, influencerID) {
			out = append(out, *cloneUser(user))
		}
	}
	return out, nil
}

func cloneUser(user models.User) *models.User {
	clone := user
	clone.DietaryPreferences = append([]string(nil), user.DietaryPreferences...)
	clone.FavoriteMealIDs = append([]primitive.ObjectID(nil), user.FavoriteMealIDs...)
	clone.FollowingInfluencerIDs = append([]primitive.ObjectID(nil), user.FollowingInfluencerIDs...)
	if user.Height != nil {
		h := *user.Height
		clone.Height = &h
	}
	if user.Weight != nil {
		w := *user.Weight
		clone.Weight = &w
	}
	if user.Age != nil {
		a := *user.Age
		clone.Age = &a
	}
	return &clone
}
