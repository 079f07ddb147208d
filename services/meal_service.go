package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

// MealNotifier receives freshly published meals for follower fan-out
// (websocket feed, mobile push). Publication must never fail because a
// notification did.
type MealNotifier interface {
	MealPublished(influencerID primitive.ObjectID, meal map[string]interface{})
}

// MealCatalog owns meal records and their influencer-scoped lifecycle.
type MealCatalog struct {
	meals       store.MealStore
	influencers store.InfluencerStore
	users       store.UserStore
	notifier    MealNotifier
	log         *zap.Logger
}

// NewMealCatalog builds the catalog. notifier may be nil when no fan-out
// is wired (tests, tooling).
func NewMealCatalog(st store.Store, notifier MealNotifier) *MealCatalog {
	return &MealCatalog{
		meals:       st.Meals(),
		influencers: st.Influencers(),
		users:       st.Users(),
		notifier:    notifier,
		log:         zap.L().Named("meals"),
	}
}

type CreateMealInput struct {
	Title          string
	Description    string
	ImageURL       string
	Ingredients    string // serialized JSON
	Instructions   string
	PrepTime       *int
	CookTime       *int
	Servings       *int
	Calories       *int
	Protein        *float64
	Carbs          *float64
	Fat            *float64
	Tags           []string
	AffiliateLinks string // serialized JSON
}

// Create publishes a meal owned by the given influencer. Title and
// description are mandatory; the influencer reference is re-resolved so a
// meal can never point at a profile that does not exist at creation time.
func (c *MealCatalog) Create(ctx context.Context, influencerID models.InfluencerID, in CreateMealInput) (map[string]interface{}, error) {
	if in.Title == "" || in.Description == "" {
		return nil, fmt.Errorf("title and description are required: %w", ErrInvalidInput)
	}
	inf, err := c.influencers.ByID(ctx, influencerID.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}

	ingredients := in.Ingredients
	if ingredients == "" {
		ingredients = "[]"
	}
	affiliateLinks := in.AffiliateLinks
	if affiliateLinks == "" {
		affiliateLinks = "[]"
	}

	now := time.Now().UTC()
	meal := &models.Meal{
		InfluencerID:   inf.ID,
		Title:          in.Title,
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		Ingredients:    ingredients,
		Instructions:   in.Instructions,
		PrepTime:       in.PrepTime,
		CookTime:       in.CookTime,
		Servings:       in.Servings,
		Calories:       in.Calories,
		Protein:        in.Protein,
		Carbs:          in.Carbs,
		Fat:            in.Fat,
		Tags:           models.NormalizeTags(in.Tags),
		AffiliateLinks: affiliateLinks,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.meals.Insert(ctx, meal); err != nil {
		return nil, storeErr(err)
	}
	c.log.Info("meal published",
		zap.String("meal_id", meal.ID.Hex()),
		zap.String("influencer_id", inf.ID.Hex()))

	view := mealView(meal, influencerDisplayName(ctx, c.influencers, c.users, inf.ID))
	if c.notifier != nil {
		c.notifier.MealPublished(inf.ID, view)
	}
	return view, nil
}

// Update patches a meal, but only for the influencer who owns it.
func (c *MealCatalog) Update(ctx context.Context, id models.MealID, patch models.MealPatch, requester models.InfluencerID) (map[string]interface{}, error) {
	meal, err := c.meals.ByID(ctx, id.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	if meal.InfluencerID != requester.ObjectID() {
		return nil, fmt.Errorf("meal belongs to another influencer: %w", ErrForbidden)
	}
	if patch.Tags != nil {
		norm := models.NormalizeTags(*patch.Tags)
		patch.Tags = &norm
	}
	if err := c.meals.Apply(ctx, meal.ID, patch); err != nil {
		return nil, storeErr(err)
	}
	return c.GetByID(ctx, id)
}

// Delete removes a meal, ownership checked like Update. Deletion does not
// cascade into users' favorite sets; readers skip references that fail to
// resolve.
func (c *MealCatalog) Delete(ctx context.Context, id models.MealID, requester models.InfluencerID) error {
	meal, err := c.meals.ByID(ctx, id.ObjectID())
	if err != nil {
		return storeErr(err)
	}
	if meal.InfluencerID != requester.ObjectID() {
		return fmt.Errorf("meal belongs to another influencer: %w", ErrForbidden)
	}
	return storeErr(c.meals.Delete(ctx, meal.ID))
}

// GetByID returns a meal view with the owning influencer's display name
// embedded.
func (c *MealCatalog) GetByID(ctx context.Context, id models.MealID) (map[string]interface{}, error) {
	meal, err := c.meals.ByID(ctx, id.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	return mealView(meal, influencerDisplayName(ctx, c.influencers, c.users, meal.InfluencerID)), nil
}

type ListMealsInput struct {
	Page         int
	PerPage      int
	Tag          string // exact tag match
	InfluencerID *models.InfluencerID
}

// List pages the catalog newest-first.
func (c *MealCatalog) List(ctx context.Context, in ListMealsInput) (*PagedResult, error) {
	page, perPage := normalizePage(in.Page, in.PerPage)

	filter := store.MealFilter{
		Tag:   in.Tag,
		Skip:  int64(page-1) * int64(perPage),
		Limit: int64(perPage),
	}
	if in.InfluencerID != nil {
		oid := in.InfluencerID.ObjectID()
		filter.InfluencerID = &oid
	}
	meals, total, err := c.meals.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0, len(meals))
	for i := range meals {
		meal := &meals[i]
		items = append(items, mealView(meal, influencerDisplayName(ctx, c.influencers, c.users, meal.InfluencerID)))
	}
	return newPagedResult(items, total, page, perPage), nil
}
