package services

import (
	"context"
	"testing"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store/memstore"
)

type fixture struct {
	store       *memstore.Store
	users       *UserDirectory
	influencers *InfluencerRegistry
	meals       *MealCatalog
}

func newFixture(notifier MealNotifier) *fixture {
	st := memstore.New()
	return &fixture{
		store:       st,
		users:       NewUserDirectory(st),
		influencers: NewInfluencerRegistry(st),
		meals:       NewMealCatalog(st, notifier),
	}
}

func (f *fixture) registerUser(t *testing.T, username string) models.UserID {
	t.Helper()
	id, _, err := f.users.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Name:     "Test " + username,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return id
}

func (f *fixture) makeInfluencer(t *testing.T, username, specialty string) (models.UserID, models.InfluencerID) {
	t.Helper()
	userID := f.registerUser(t, username)
	if _, err := f.influencers.CreateProfile(context.Background(), userID, specialty, ""); err != nil {
		t.Fatalf("create profile for %s: %v", username, err)
	}
	infID, err := f.influencers.ProfileIDForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolve profile for %s: %v", username, err)
	}
	return userID, infID
}

func (f *fixture) publishMeal(t *testing.T, infID models.InfluencerID, title string, tags ...string) models.MealID {
	t.Helper()
	meal, err := f.meals.Create(context.Background(), infID, CreateMealInput{
		Title:       title,
		Description: "description of " + title,
		Tags:        tags,
	})
	if err != nil {
		t.Fatalf("publish %s: %v", title, err)
	}
	id, err := models.ParseMealID(meal["id"].(string))
	if err != nil {
		t.Fatalf("meal id: %v", err)
	}
	return id
}
