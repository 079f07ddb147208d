package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
	"github.com/VIJAYRUR/fitfoodie-backend/store"
)

// InfluencerRegistry owns influencer profiles (1:1 extensions of users)
// and the derived follower relationship. Followers are never stored on the
// influencer; every count and listing is recomputed from the user
// collection, so there is no cached counter to go stale.
type InfluencerRegistry struct {
	influencers store.InfluencerStore
	users       store.UserStore
	log         *zap.Logger
}

func NewInfluencerRegistry(st store.Store) *InfluencerRegistry {
	return &InfluencerRegistry{
		influencers: st.Influencers(),
		users:       st.Users(),
		log:         zap.L().Named("influencers"),
	}
}

// CreateProfile promotes a user to influencer. The flag flip and the
// profile insert are two separate document writes; a crash in between
// leaves an influencer-flagged user without a profile, which a retry of
// CreateProfile repairs (the flag flip is idempotent).
func (r *InfluencerRegistry) CreateProfile(ctx context.Context, userID models.UserID, specialty, socialMediaLinks string) (map[string]interface{}, error) {
	user, err := r.users.ByID(ctx, userID.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	if _, err := r.influencers.ByUserID(ctx, userID.ObjectID()); err == nil {
		return nil, fmt.Errorf("influencer profile already exists: %w", ErrDuplicate)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if err := r.users.MarkInfluencer(ctx, user.ID); err != nil {
		return nil, storeErr(err)
	}
	user.IsInfluencer = true

	now := time.Now().UTC()
	inf := &models.Influencer{
		UserID:           user.ID,
		Specialty:        specialty,
		SocialMediaLinks: socialMediaLinks,
		Verified:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := r.influencers.Insert(ctx, inf); err != nil {
		return nil, storeErr(err)
	}
	r.log.Info("influencer profile created",
		zap.String("influencer_id", inf.ID.Hex()),
		zap.String("user_id", user.ID.Hex()))

	view := influencerView(inf)
	view["user"] = userView(user)
	return view, nil
}

// UpdateProfile patches the profile owned by the given user.
func (r *InfluencerRegistry) UpdateProfile(ctx context.Context, userID models.UserID, patch models.InfluencerPatch) (map[string]interface{}, error) {
	inf, err := r.influencers.ByUserID(ctx, userID.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	if err := r.influencers.Apply(ctx, inf.ID, patch); err != nil {
		return nil, storeErr(err)
	}
	inf, err = r.influencers.ByID(ctx, inf.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	view := influencerView(inf)
	if user, err := r.users.ByID(ctx, inf.UserID); err == nil {
		view["user"] = userView(user)
	}
	return view, nil
}

// GetByID returns the influencer with its user view and a fresh follower
// count embedded.
func (r *InfluencerRegistry) GetByID(ctx context.Context, id models.InfluencerID) (map[string]interface{}, error) {
	inf, err := r.influencers.ByID(ctx, id.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	view := influencerView(inf)
	if user, err := r.users.ByID(ctx, inf.UserID); err == nil {
		view["user"] = userView(user)
	}
	count, err := r.users.CountFollowers(ctx, inf.ID)
	if err != nil {
		return nil, err
	}
	view["followers_count"] = count
	return view, nil
}

// ProfileIDForUser resolves the influencer id owned by a user. Request
// handlers use it to scope meal writes to the caller's own profile.
func (r *InfluencerRegistry) ProfileIDForUser(ctx context.Context, userID models.UserID) (models.InfluencerID, error) {
	inf, err := r.influencers.ByUserID(ctx, userID.ObjectID())
	if err != nil {
		return "", storeErr(err)
	}
	return models.InfluencerID(inf.ID.Hex()), nil
}

// GetByUserID looks the profile up by its owning user.
func (r *InfluencerRegistry) GetByUserID(ctx context.Context, userID models.UserID) (map[string]interface{}, error) {
	inf, err := r.influencers.ByUserID(ctx, userID.ObjectID())
	if err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, models.InfluencerID(inf.ID.Hex()))
}

// Specialties returns the distinct specialty values across all profiles.
func (r *InfluencerRegistry) Specialties(ctx context.Context) ([]string, error) {
	return r.influencers.Specialties(ctx)
}

const (
	SortNewest    = "newest"
	SortFollowers = "followers"
)

type ListInfluencersInput struct {
	Page      int
	PerPage   int
	Specialty string // case-insensitive substring match
	SortBy    string // SortNewest (default) or SortFollowers
}

// List pages the influencer directory. The followers ordering is computed
// from the derived counts, so that path fetches the full filtered set and
// pages in memory; creation-time ordering pages in the store.
func (r *InfluencerRegistry) List(ctx context.Context, in ListInfluencersInput) (*PagedResult, error) {
	page, perPage := normalizePage(in.Page, in.PerPage)
	skip := int64(page-1) * int64(perPage)

	var (
		pageItems []models.Influencer
		total     int64
		counts    map[string]int64
		err       error
	)
	if in.SortBy == SortFollowers {
		all, n, listErr := r.influencers.List(ctx, store.InfluencerFilter{Specialty: in.Specialty})
		if listErr != nil {
			return nil, listErr
		}
		total = n
		counts = make(map[string]int64, len(all))
		for _, inf := range all {
			c, countErr := r.users.CountFollowers(ctx, inf.ID)
			if countErr != nil {
				return nil, countErr
			}
			counts[inf.ID.Hex()] = c
		}
		// Stable sort keeps the newest-first store order among ties.
		sort.SliceStable(all, func(a, b int) bool {
			return counts[all[a].ID.Hex()] > counts[all[b].ID.Hex()]
		})
		if skip < int64(len(all)) {
			end := skip + int64(perPage)
			if end > int64(len(all)) {
				end = int64(len(all))
			}
			pageItems = all[skip:end]
		}
	} else {
		pageItems, total, err = r.influencers.List(ctx, store.InfluencerFilter{
			Specialty: in.Specialty,
			Skip:      skip,
			Limit:     int64(perPage),
		})
		if err != nil {
			return nil, err
		}
	}

	items := make([]map[string]interface{}, 0, len(pageItems))
	for i := range pageItems {
		inf := &pageItems[i]
		user, err := r.users.ByID(ctx, inf.UserID)
		if err != nil {
			// Profile whose user vanished: skip rather than fail the page.
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		view := influencerView(inf)
		view["user"] = userView(user)
		if counts != nil {
			view["followers_count"] = counts[inf.ID.Hex()]
		} else {
			c, err := r.users.CountFollowers(ctx, inf.ID)
			if err != nil {
				return nil, err
			}
			view["followers_count"] = c
		}
		items = append(items, view)
	}
	return newPagedResult(items, total, page, perPage), nil
}

// FollowerCount recomputes the follower count for one influencer.
func (r *InfluencerRegistry) FollowerCount(ctx context.Context, id models.InfluencerID) (int64, error) {
	if _, err := r.influencers.ByID(ctx, id.ObjectID()); err != nil {
		return 0, storeErr(err)
	}
	return r.users.CountFollowers(ctx, id.ObjectID())
}

// Followers materializes the users whose following set contains the
// influencer.
func (r *InfluencerRegistry) Followers(ctx context.Context, id models.InfluencerID) ([]map[string]interface{}, error) {
	if _, err := r.influencers.ByID(ctx, id.ObjectID()); err != nil {
		return nil, storeErr(err)
	}
	followers, err := r.users.Followers(ctx, id.ObjectID())
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(followers))
	for i := range followers {
		out = append(out, userView(&followers[i]))
	}
	return out, nil
}
