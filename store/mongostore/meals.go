package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

type mealStore struct {
	col *mongo.Collection
}

func (s *mealStore) Insert(ctx context.Context, m *models.Meal) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, m)
	return mapErr(err)
}

func (s *mealStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	var m models.Meal
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (s *mealStore) Apply(ctx context.Context, id primitive.ObjectID, patch models.MealPatch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}
	if patch.Ingredients != nil {
		set["ingredients"] = *patch.Ingredients
	}
	if patch.Instructions != nil {
		set["instructions"] = *patch.Instructions
	}
	if patch.PrepTime != nil {
		set["prep_time"] = *patch.PrepTime
	}
	if patch.CookTime != nil {
		set["cook_time"] = *patch.CookTime
	}
	if patch.Servings != nil {
		set["servings"] = *patch.Servings
	}
	if patch.Calories != nil {
		set["calories"] = *patch.Calories
	}
	if patch.Protein != nil {
		set["protein"] = *patch.Protein
	}
	if patch.Carbs != nil {
		set["carbs"] = *patch.Carbs
	}
	if patch.Fat != nil {
		set["fat"] = *patch.Fat
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.AffiliateLinks != nil {
		set["affiliate_links"] = *patch.AffiliateLinks
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *mealStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *mealStore) List(ctx context.Context, f store.MealFilter) ([]models.Meal, int64, error) {
	filter := bson.M{}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.InfluencerID != nil {
		filter["influencer_id"] = *f.InfluencerID
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapErr(err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	var out []models.Meal
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, mapErr(err)
	}
	return out, total, nil
}
