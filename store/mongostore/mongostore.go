// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database

	users       *userStore
	influencers *influencerStore
	meals       *mealStore
	devices     *deviceStore
}

// Open connects, pings and ensures the unique indexes (username, email,
// one influencer profile per user, one device per user/token pair).
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(dbName)
	s := &Store{
		client:      client,
		db:          db,
		users:       &userStore{col: db.Collection("users")},
		influencers: &influencerStore{col: db.Collection("influencers")},
		meals:       &mealStore{col: db.Collection("meals")},
		devices:     &deviceStore{col: db.Collection("devices")},
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	_, err := s.users.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "following_influencer_ids", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = s.influencers.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = s.meals.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "influencer_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}
	_, err = s.devices.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "token_hash", Value: 1}}, Options: unique,
	})
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Users() store.UserStore             { return s.users }
func (s *Store) Influencers() store.InfluencerStore { return s.influencers }
func (s *Store) Meals() store.MealStore             { return s.meals }
func (s *Store) Devices() store.DeviceStore         { return s.devices }

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	default:
		return err
	}
}
