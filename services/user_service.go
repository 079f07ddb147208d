package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
	"github.com/VIJAYRUR/fitfoodie-backend/utils"
)

// UserDirectory owns user records, credentials and the user's outbound
// relationship sets (favorite meals, followed influencers).
type UserDirectory struct {
	users       store.UserStore
	influencers store.InfluencerStore
	meals       store.MealStore
	log         *zap.Logger
}

func NewUserDirectory(st store.Store) *UserDirectory {
	return &UserDirectory{
		users:       st.Users(),
		influencers: st.Influencers(),
		meals:       st.Meals(),
		log:         zap.L().Named("users"),
	}
}

type RegisterInput struct {
	Username           string
	Email              string
	Password           string
	Name               string
	Bio                string
	Height             *float64
	Weight             *float64
	Age                *int
	ActivityLevel      string
	DietaryPreferences []string
}

// Register creates a new account. Username and email are globally unique;
// the password is stored only as a bcrypt hash.
func (d *UserDirectory) Register(ctx context.Context, in RegisterInput) (models.UserID, map[string]interface{}, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return "", nil, fmt.Errorf("username, email and password are required: %w", ErrInvalidInput)
	}

	if _, err := d.users.ByUsername(ctx, in.Username); err == nil {
		return "", nil, fmt.Errorf("username already exists: %w", ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", nil, err
	}
	if _, err := d.users.ByEmail(ctx, in.Email); err == nil {
		return "", nil, fmt.Errorf("email already exists: %w", ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		Username:               in.Username,
		Email:                  in.Email,
		PasswordHash:           hash,
		Name:                   in.Name,
		Bio:                    in.Bio,
		Height:                 in.Height,
		Weight:                 in.Weight,
		Age:                    in.Age,
		ActivityLevel:          in.ActivityLevel,
		DietaryPreferences:     models.NormalizeTags(in.DietaryPreferences),
		IsInfluencer:           false,
		FavoriteMealIDs:        []primitive.ObjectID{},
		FollowingInfluencerIDs: []primitive.ObjectID{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	// The unique indexes are the backstop for concurrent registrations
	// racing the pre-checks above.
	if err := d.users.Insert(ctx, user); err != nil {
		return "", nil, storeErr(err)
	}
	d.log.Info("user registered", zap.String("user_id", user.ID.Hex()), zap.String("username", user.Username))
	return models.UserID(user.ID.Hex()), userView(user), nil
}

// Authenticate verifies a username/password pair. The failure is the same
// whether the user is absent or the password is wrong.
func (d *UserDirectory) Authenticate(ctx context.Context, username, password string) (models.UserID, map[string]interface{}, error) {
	user, err := d.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredential
	}
	return models.UserID(user.ID.Hex()), userView(user), nil
}

func (d *UserDirectory) GetProfile(ctx context.Context, id models.UserID) (map[string]interface{}, error) {
	user, err := d.users.ByID(ctx, id.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	return userView(user), nil
}

// UpdateProfile merges only the fields the patch carries and always
// refreshes updated_at.
func (d *UserDirectory) UpdateProfile(ctx context.Context, id models.UserID, patch models.UserPatch) (map[string]interface{}, error) {
	if patch.DietaryPreferences != nil {
		norm := models.NormalizeTags(*patch.DietaryPreferences)
		patch.DietaryPreferences = &norm
	}
	if err := d.users.Apply(ctx, id.ObjectID(), patch); err != nil {
		return nil, storeErr(err)
	}
	return d.GetProfile(ctx, id)
}

// ChangePassword replaces the credential only after the current password
// verifies.
func (d *UserDirectory) ChangePassword(ctx context.Context, id models.UserID, current, next string) error {
	if next == "" {
		return fmt.Errorf("new password is required: %w", ErrInvalidInput)
	}
	user, err := d.users.ByID(ctx, id.ObjectID())
	if err != nil {
		return storeErr(err)
	}
	if !utils.CheckPasswordHash(current, user.PasswordHash) {
		return ErrInvalidCredential
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return err
	}
	return storeErr(d.users.SetPasswordHash(ctx, id.ObjectID(), hash))
}

// ToggleFavorite inserts or removes a meal reference in the user's
// favorite set. Both directions are idempotent: a duplicate add and an
// absent remove are no-op successes. The referenced meal must exist when
// adding; removal works regardless so dangling references can be cleaned.
func (d *UserDirectory) ToggleFavorite(ctx context.Context, userID models.UserID, mealID models.MealID, add bool) error {
	if add {
		if _, err := d.meals.ByID(ctx, mealID.ObjectID()); err != nil {
			return fmt.Errorf("meal: %w", storeErr(err))
		}
		return storeErr(d.users.AddFavorite(ctx, userID.ObjectID(), mealID.ObjectID()))
	}
	return storeErr(d.users.RemoveFavorite(ctx, userID.ObjectID(), mealID.ObjectID()))
}

// ToggleFollow mirrors ToggleFavorite for the following set.
func (d *UserDirectory) ToggleFollow(ctx context.Context, userID models.UserID, influencerID models.InfluencerID, add bool) error {
	if add {
		if _, err := d.influencers.ByID(ctx, influencerID.ObjectID()); err != nil {
			return fmt.Errorf("influencer: %w", storeErr(err))
		}
		return storeErr(d.users.Follow(ctx, userID.ObjectID(), influencerID.ObjectID()))
	}
	return storeErr(d.users.Unfollow(ctx, userID.ObjectID(), influencerID.ObjectID()))
}

// ListFavorites resolves the user's favorite meals. References that no
// longer resolve (the meal was deleted) are silently skipped.
func (d *UserDirectory) ListFavorites(ctx context.Context, userID models.UserID) ([]map[string]interface{}, error) {
	user, err := d.users.ByID(ctx, userID.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]map[string]interface{}, 0, len(user.FavoriteMealIDs))
	for _, mealID := range user.FavoriteMealIDs {
		meal, err := d.meals.ByID(ctx, mealID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		name := influencerDisplayName(ctx, d.influencers, d.users, meal.InfluencerID)
		out = append(out, mealView(meal, name))
	}
	return out, nil
}

// ListFollowing resolves the influencers the user follows, embedding each
// influencer's user view. Unresolvable references are skipped.
func (d *UserDirectory) ListFollowing(ctx context.Context, userID models.UserID) ([]map[string]interface{}, error) {
	user, err := d.users.ByID(ctx, userID.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]map[string]interface{}, 0, len(user.FollowingInfluencerIDs))
	for _, infID := range user.FollowingInfluencerIDs {
		inf, err := d.influencers.ByID(ctx, infID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		view := influencerView(inf)
		if infUser, err := d.users.ByID(ctx, inf.UserID); err == nil {
			view["user"] = userView(infUser)
		}
		out = append(out, view)
	}
	return out, nil
}
