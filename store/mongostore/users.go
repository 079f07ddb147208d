package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
)

type userStore struct {
	col *mongo.Collection
}

func (s *userStore) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, u)
	return mapErr(err)
}

func (s *userStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *userStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *userStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *userStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *userStore) Apply(ctx context.Context, id primitive.ObjectID, patch models.UserPatch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.Height != nil {
		set["height"] = *patch.Height
	}
	if patch.Weight != nil {
		set["weight"] = *patch.Weight
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.ActivityLevel != nil {
		set["activity_level"] = *patch.ActivityLevel
	}
	if patch.DietaryPreferences != nil {
		set["dietary_preferences"] = *patch.DietaryPreferences
	}
	return s.updateOne(ctx, id, bson.M{"$set": set})
}

func (s *userStore) SetPasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	return s.updateOne(ctx, id, bson.M{
		"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()},
	})
}

func (s *userStore) MarkInfluencer(ctx context.Context, id primitive.ObjectID) error {
	return s.updateOne(ctx, id, bson.M{
		"$set": bson.M{"is_influencer": true, "updated_at": time.Now().UTC()},
	})
}

func (s *userStore) AddFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error {
	return s.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"favorite_meal_ids": mealID}})
}

func (s *userStore) RemoveFavorite(ctx context.Context, userID, mealID primitive.ObjectID) error {
	return s.updateOne(ctx, userID, bson.M{"$pull": bson.M{"favorite_meal_ids": mealID}})
}

func (s *userStore) Follow(ctx context.Context, userID, influencerID primitive.ObjectID) error {
	return s.updateOne(ctx, userID, bson.M{"$addToSet": bson.M{"following_influencer_ids": influencerID}})
}

func (s *userStore) Unfollow(ctx context.Context, userID, influencerID primitive.ObjectID) error {
	return s.updateOne(ctx, userID, bson.M{"$pull": bson.M{"following_influencer_ids": influencerID}})
}

func (s *userStore) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return mapErr(mongo.ErrNoDocuments)
	}
	return nil
}

func (s *userStore) CountFollowers(ctx context.Context, influencerID primitive.ObjectID) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"following_influencer_ids": influencerID})
	return n, mapErr(err)
}

func (s *userStore) Followers(ctx context.Context, influencerID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.col.Find(ctx, bson.M{"following_influencer_ids": influencerID})
	if err != nil {
		return nil, mapErr(err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, mapErr(err)
	}
	return users, nil
}
