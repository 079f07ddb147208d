package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
)

type deviceStore struct {
	col *mongo.Collection
}

func (s *deviceStore) Upsert(ctx context.Context, d *models.UserDevice) error {
	now := time.Now().UTC()
	filter := bson.M{"user_id": d.UserID, "token_hash": d.TokenHash}
	update := bson.M{
		"$set": bson.M{
			"platform":     d.Platform,
			"endpoint_arn": d.EndpointARN,
			"enabled":      d.Enabled,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	res, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return mapErr(err)
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (s *deviceStore) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.UserDevice, error) {
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID, "enabled": true})
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.UserDevice
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
