package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

// Views are serialization-ready projections: identifiers rendered as hex
// strings, timestamps as RFC 3339, the password hash omitted, serialized
// JSON fields parsed back when parseable (raw string passthrough when not).

func renderTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

func stringSeq(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func userView(u *models.User) map[string]interface{} {
	view := map[string]interface{}{
		"id":                       u.ID.Hex(),
		"username":                 u.Username,
		"email":                    u.Email,
		"name":                     u.Name,
		"bio":                      u.Bio,
		"activity_level":           u.ActivityLevel,
		"dietary_preferences":      stringSeq(u.DietaryPreferences),
		"is_influencer":            u.IsInfluencer,
		"favorite_meal_ids":        hexIDs(u.FavoriteMealIDs),
		"following_influencer_ids": hexIDs(u.FollowingInfluencerIDs),
		"created_at":               renderTime(u.CreatedAt),
		"updated_at":               renderTime(u.UpdatedAt),
	}
	if u.Height != nil {
		view["height"] = *u.Height
	}
	if u.Weight != nil {
		view["weight"] = *u.Weight
	}
	if u.Age != nil {
		view["age"] = *u.Age
	}
	return view
}

func influencerView(inf *models.Influencer) map[string]interface{} {
	return map[string]interface{}{
		"id":                 inf.ID.Hex(),
		"user_id":            inf.UserID.Hex(),
		"specialty":          inf.Specialty,
		"social_media_links": models.DecodeJSONString(inf.SocialMediaLinks),
		"verified":           inf.Verified,
		"created_at":         renderTime(inf.CreatedAt),
		"updated_at":         renderTime(inf.UpdatedAt),
	}
}

func mealView(m *models.Meal, influencerName string) map[string]interface{} {
	view := map[string]interface{}{
		"id":              m.ID.Hex(),
		"influencer_id":   m.InfluencerID.Hex(),
		"title":           m.Title,
		"description":     m.Description,
		"image_url":       m.ImageURL,
		"ingredients":     models.DecodeJSONString(m.Ingredients),
		"instructions":    m.Instructions,
		"tags":            stringSeq(m.Tags),
		"affiliate_links": models.DecodeJSONString(m.AffiliateLinks),
		"created_at":      renderTime(m.CreatedAt),
		"updated_at":      renderTime(m.UpdatedAt),
	}
	if influencerName != "" {
		view["influencer"] = influencerName
	}
	if m.PrepTime != nil {
		view["prep_time"] = *m.PrepTime
	}
	if m.CookTime != nil {
		view["cook_time"] = *m.CookTime
	}
	if m.Servings != nil {
		view["servings"] = *m.Servings
	}
	if m.Calories != nil {
		view["calories"] = *m.Calories
	}
	if m.Protein != nil {
		view["protein"] = *m.Protein
	}
	if m.Carbs != nil {
		view["carbs"] = *m.Carbs
	}
	if m.Fat != nil {
		view["fat"] = *m.Fat
	}
	return view
}

// influencerDisplayName resolves the display name a meal view embeds. Any
// broken link along the chain degrades to an empty name, never an error.
func influencerDisplayName(ctx context.Context, influencers store.InfluencerStore, users store.UserStore, influencerID primitive.ObjectID) string {
	inf, err := influencers.ByID(ctx, influencerID)
	if err != nil {
		return ""
	}
	u, err := users.ByID(ctx, inf.UserID)
	if err != nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
