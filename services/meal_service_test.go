package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
)

type captureNotifier struct {
	influencerIDs []primitive.ObjectID
	meals         []map[string]interface{}
}

func (c *captureNotifier) MealPublished(influencerID primitive.ObjectID, meal map[string]interface{}) {
	c.influencerIDs = append(c.influencerIDs, influencerID)
	c.meals = append(c.meals, meal)
}

func TestCreateMealPublishesAndNotifies(t *testing.T) {
	notifier := &captureNotifier{}
	f := newFixture(notifier)
	ctx := context.Background()
	_, infID := f.makeInfluencer(t, "chef", "Keto")

	calories := 450
	view, err := f.meals.Create(ctx, infID, CreateMealInput{
		Title:       "Avocado Bowl",
		Description: "Smashed avocado on rice",
		Ingredients: `["avocado","rice"]`,
		Calories:    &calories,
		Tags:        []string{"keto", "lunch", "keto"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view["title"] != "Avocado Bowl" {
		t.Fatalf("unexpected title %v", view["title"])
	}
	if view["influencer"] != "Test chef" {
		t.Fatalf("expected embedded display name, got %v", view["influencer"])
	}
	if tags := view["tags"].([]string); len(tags) != 2 {
		t.Fatalf("expected deduplicated tags, got %v", tags)
	}
	ingredients, ok := view["ingredients"].([]interface{})
	if !ok || len(ingredients) != 2 {
		t.Fatalf("expected decoded ingredients, got %v", view["ingredients"])
	}
	if view["calories"] != calories {
		t.Fatalf("expected calories %d, got %v", calories, view["calories"])
	}

	if len(notifier.meals) != 1 {
		t.Fatalf("expected one publish notification, got %d", len(notifier.meals))
	}
	if notifier.influencerIDs[0] != infID.ObjectID() {
		t.Fatal("notification must carry the owning influencer")
	}
}

func TestCreateMealValidation(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, infID := f.makeInfluencer(t, "chef", "Keto")

	if _, err := f.meals.Create(ctx, infID, CreateMealInput{Description: "no title"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	ghost, _ := models.ParseInfluencerID("65a000000000000000000001")
	_, err := f.meals.Create(ctx, ghost, CreateMealInput{Title: "t", Description: "d"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing influencer, got %v", err)
	}
}

func TestMealOwnershipEnforced(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, ownerID := f.makeInfluencer(t, "owner", "Keto")
	_, otherID := f.makeInfluencer(t, "other", "Vegan")
	mealID := f.publishMeal(t, ownerID, "Avocado Bowl")

	title := "Stolen Bowl"
	if _, err := f.meals.Update(ctx, mealID, models.MealPatch{Title: &title}, otherID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}
	if err := f.meals.Delete(ctx, mealID, otherID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	// The owner can do both.
	view, err := f.meals.Update(ctx, mealID, models.MealPatch{Title: &title}, ownerID)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if view["title"] != title {
		t.Fatalf("expected %q, got %v", title, view["title"])
	}
	if err := f.meals.Delete(ctx, mealID, ownerID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := f.meals.GetByID(ctx, mealID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateMealMergesOnlyPatchedFields(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, infID := f.makeInfluencer(t, "chef", "Keto")
	mealID := f.publishMeal(t, infID, "Avocado Bowl", "keto")

	prep := 15
	view, err := f.meals.Update(ctx, mealID, models.MealPatch{PrepTime: &prep}, infID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view["prep_time"] != prep {
		t.Fatalf("expected prep_time %d, got %v", prep, view["prep_time"])
	}
	if view["title"] != "Avocado Bowl" {
		t.Fatalf("title must survive a partial update, got %v", view["title"])
	}
	if tags := view["tags"].([]string); len(tags) != 1 || tags[0] != "keto" {
		t.Fatalf("tags must survive a partial update, got %v", tags)
	}
}

func TestListMealsFiltersAndPages(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, ketoID := f.makeInfluencer(t, "keto_chef", "Keto")
	_, veganID := f.makeInfluencer(t, "vegan_chef", "Vegan")

	for i := 0; i < 3; i++ {
		f.publishMeal(t, ketoID, fmt.Sprintf("Keto %d", i), "keto")
	}
	f.publishMeal(t, veganID, "Vegan Bowl", "vegan")

	byTag, err := f.meals.List(ctx, ListMealsInput{Tag: "keto"})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if byTag.Total != 3 {
		t.Fatalf("expected 3 keto meals, got %d", byTag.Total)
	}

	byOwner, err := f.meals.List(ctx, ListMealsInput{InfluencerID: &veganID})
	if err != nil {
		t.Fatalf("list by influencer: %v", err)
	}
	if byOwner.Total != 1 {
		t.Fatalf("expected 1 vegan meal, got %d", byOwner.Total)
	}

	page, err := f.meals.List(ctx, ListMealsInput{Page: 2, PerPage: 3})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if page.Total != 4 || page.Pages != 2 || page.CurrentPage != 2 {
		t.Fatalf("unexpected envelope total=%d pages=%d current=%d", page.Total, page.Pages, page.CurrentPage)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item on the last page, got %d", len(page.Items))
	}
}
