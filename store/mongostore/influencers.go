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

type influencerStore struct {
	col *mongo.Collection
}

func (s *influencerStore) Insert(ctx context.Context, inf *models.Influencer) error {
	if inf.ID.IsZero() {
		inf.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, inf)
	return mapErr(err)
}

func (s *influencerStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.Influencer, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *influencerStore) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Influencer, error) {
	return s.findOne(ctx, bson.M{"user_id": userID})
}

func (s *influencerStore) findOne(ctx context.Context, filter bson.M) (*models.Influencer, error) {
	var inf models.Influencer
	if err := s.col.FindOne(ctx, filter).Decode(&inf); err != nil {
		return nil, mapErr(err)
	}
	return &inf, nil
}

func (s *influencerStore) Apply(ctx context.Context, id primitive.ObjectID, patch models.InfluencerPatch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Specialty != nil {
		set["specialty"] = *patch.Specialty
	}
	if patch.SocialMediaLinks != nil {
		set["social_media_links"] = *patch.SocialMediaLinks
	}
	if patch.Verified != nil {
		set["verified"] = *patch.Verified
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

func (s *influencerStore) List(ctx context.Context, f store.InfluencerFilter) ([]models.Influencer, int64, error) {
	filter := bson.M{}
	if f.Specialty != "" {
		filter["specialty"] = primitive.Regex{Pattern: f.Specialty, Options: "i"}
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
	var out []models.Influencer
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, mapErr(err)
	}
	return out, total, nil
}

func (s *influencerStore) Specialties(ctx context.Context) ([]string, error) {
	values, err := s.col.Distinct(ctx, "specialty", bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if sp, ok := v.(string); ok && sp != "" {
			out = append(out, sp)
		}
	}
	return out, nil
}
