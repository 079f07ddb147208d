package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is owned by exactly one influencer. Ingredients and affiliate links
// are stored in serialized form and parsed back on render; users favoriting
// a meal hold a reference, never a copy.
type Meal struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	InfluencerID   primitive.ObjectID `bson:"influencer_id"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	ImageURL       string             `bson:"image_url,omitempty"`
	Ingredients    string             `bson:"ingredients,omitempty"`     // serialized JSON
	Instructions   string             `bson:"instructions,omitempty"`
	PrepTime       *int               `bson:"prep_time,omitempty"`
	CookTime       *int               `bson:"cook_time,omitempty"`
	Servings       *int               `bson:"servings,omitempty"`
	Calories       *int               `bson:"calories,omitempty"`
	Protein        *float64           `bson:"protein,omitempty"`
	Carbs          *float64           `bson:"carbs,omitempty"`
	Fat            *float64           `bson:"fat,omitempty"`
	Tags           []string           `bson:"tags"`
	AffiliateLinks string             `bson:"affiliate_links,omitempty"` // serialized JSON
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// MealPatch enumerates the updatable meal fields. The owning influencer id
// is immutable after creation.
type MealPatch struct {
	Title          *string
	Description    *string
	ImageURL       *string
	Ingredients    *string // serialized JSON
	Instructions   *string
	PrepTime       *int
	CookTime       *int
	Servings       *int
	Calories       *int
	Protein        *float64
	Carbs          *float64
	Fat            *float64
	Tags           *[]string
	AffiliateLinks *string // serialized JSON
}

func (p MealPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.ImageURL == nil &&
		p.Ingredients == nil && p.Instructions == nil && p.PrepTime == nil &&
		p.CookTime == nil && p.Servings == nil && p.Calories == nil &&
		p.Protein == nil && p.Carbs == nil && p.Fat == nil && p.Tags == nil &&
		p.AffiliateLinks == nil
}
