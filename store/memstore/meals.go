package memstore

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

type mealStore struct {
	s *Store
}

func (m *mealStore) Insert(_ context.Context, meal *models.Meal) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if meal.ID.IsZero() {
		meal.ID = primitive.NewObjectID()
	}
	clone := *meal
	clone.Tags = append([]string(nil), meal.Tags...)
	m.s.meals[meal.ID] = clone
	return nil
}

func (m *mealStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Meal, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	meal, ok := m.s.meals[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := meal
	clone.Tags = append([]string(nil), meal.Tags...)
	return &clone, nil
}

func (m *mealStore) Apply(_ context.Context, id primitive.ObjectID, patch models.MealPatch) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	meal, ok := m.s.meals[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.Title != nil {
		meal.Title = *patch.Title
	}
	if patch.Description != nil {
		meal.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		meal.ImageURL = *patch.ImageURL
	}
	if patch.Ingredients != nil {
		meal.Ingredients = *patch.Ingredients
	}
	if patch.Instructions != nil {
		meal.Instructions = *patch.Instructions
	}
	if patch.PrepTime != nil {
		v := *patch.PrepTime
		meal.PrepTime = &v
	}
	if patch.CookTime != nil {
		v := *patch.CookTime
		meal.CookTime = &v
	}
	if patch.Servings != nil {
		v := *patch.Servings
		meal.Servings = &v
	}
	if patch.Calories != nil {
		v := *patch.Calories
		meal.Calories = &v
	}
	if patch.Protein != nil {
		v := *patch.Protein
		meal.Protein = &v
	}
	if patch.Carbs != nil {
		v := *patch.Carbs
		meal.Carbs = &v
	}
	if patch.Fat != nil {
		v := *patch.Fat
		meal.Fat = &v
	}
	if patch.Tags != nil {
		meal.Tags = append([]string(nil), *patch.Tags...)
	}
	if patch.AffiliateLinks != nil {
		meal.AffiliateLinks = *patch.AffiliateLinks
	}
	meal.UpdatedAt = time.Now().UTC()
	m.s.meals[id] = meal
	return nil
}

func (m *mealStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.meals[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.s.meals, id)
	return nil
}

func (m *mealStore) List(_ context.Context, f store.MealFilter) ([]models.Meal, int64, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var matched []models.Meal
	for _, meal := range m.s.meals {
		if f.Tag != "" && !containsTag(meal.Tags, f.Tag) {
			continue
		}
		if f.InfluencerID != nil && meal.InfluencerID != *f.InfluencerID {
			continue
		}
		matched = append(matched, meal)
	}
	sort.Slice(matched, func(a, b int) bool {
		if !matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].CreatedAt.After(matched[b].CreatedAt)
		}
		return matched[a].ID.Hex() > matched[b].ID.Hex()
	})
	total := int64(len(matched))
	return pageSlice(matched, f.Skip, f.Limit), total, nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
