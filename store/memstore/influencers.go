package memstore

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

type influencerStore struct {
	s *Store
}

func (i *influencerStore) Insert(_ context.Context, inf *models.Influencer) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	for _, existing := range i.s.influencers {
		if existing.UserID == inf.UserID {
			return store.ErrDuplicate
		}
	}
	if inf.ID.IsZero() {
		inf.ID = primitive.NewObjectID()
	}
	i.s.influencers[inf.ID] = *inf
	return nil
}

func (i *influencerStore) ByID(_ context.Context, id primitive.ObjectID) (*models.Influencer, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	inf, ok := i.s.influencers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &inf, nil
}

func (i *influencerStore) ByUserID(_ context.Context, userID primitive.ObjectID) (*models.Influencer, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	for _, inf := range i.s.influencers {
		if inf.UserID == userID {
			out := inf
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (i *influencerStore) Apply(_ context.Context, id primitive.ObjectID, patch models.InfluencerPatch) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	inf, ok := i.s.influencers[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.Specialty != nil {
		inf.Specialty = *patch.Specialty
	}
	if patch.SocialMediaLinks != nil {
		inf.SocialMediaLinks = *patch.SocialMediaLinks
	}
	if patch.Verified != nil {
		inf.Verified = *patch.Verified
	}
	inf.UpdatedAt = time.Now().UTC()
	i.s.influencers[id] = inf
	return nil
}

func (i *influencerStore) List(_ context.Context, f store.InfluencerFilter) ([]models.Influencer, int64, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	var matched []models.Influencer
	for _, inf := range i.s.influencers {
		if matchesSpecialty(inf.Specialty, f.Specialty) {
			matched = append(matched, inf)
		}
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

func (i *influencerStore) Specialties(_ context.Context) ([]string, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, inf := range i.s.influencers {
		if inf.Specialty == "" {
			continue
		}
		if _, dup := seen[inf.Specialty]; dup {
			continue
		}
		seen[inf.Specialty] = struct{}{}
		out = append(out, inf.Specialty)
	}
	sort.Strings(out)
	return out, nil
}
