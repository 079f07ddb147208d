package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
)

func TestCreateProfilePromotesUser(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	userID := f.registerUser(t, "chef")

	view, err := f.influencers.CreateProfile(ctx, userID, "Keto", `{"instagram":"@chef"}`)
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if view["specialty"] != "Keto" {
		t.Fatalf("expected specialty Keto, got %v", view["specialty"])
	}
	if view["verified"] != false {
		t.Fatal("new profiles must start unverified")
	}
	links, ok := view["social_media_links"].(map[string]interface{})
	if !ok || links["instagram"] != "@chef" {
		t.Fatalf("expected decoded social links, got %v", view["social_media_links"])
	}

	profile, err := f.users.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile["is_influencer"] != true {
		t.Fatal("creating a profile must flip the influencer flag")
	}
}

func TestCreateProfileOncePerUser(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	userID, _ := f.makeInfluencer(t, "chef", "Keto")

	_, err := f.influencers.CreateProfile(ctx, userID, "Vegan", "")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateProfileUnknownUser(t *testing.T) {
	f := newFixture(nil)
	ghost, _ := models.ParseUserID("65a000000000000000000001")
	_, err := f.influencers.CreateProfile(context.Background(), ghost, "Keto", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFollowerCountTracksFollowSet(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, infID := f.makeInfluencer(t, "chef", "Keto")

	fans := make([]models.UserID, 3)
	for i := range fans {
		fans[i] = f.registerUser(t, fmt.Sprintf("fan%d", i))
		if err := f.users.ToggleFollow(ctx, fans[i], infID, true); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}
	// Duplicate follows do not inflate the count.
	if err := f.users.ToggleFollow(ctx, fans[0], infID, true); err != nil {
		t.Fatalf("repeat follow: %v", err)
	}

	count, err := f.influencers.FollowerCount(ctx, infID)
	if err != nil {
		t.Fatalf("follower count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 followers, got %d", count)
	}

	if err := f.users.ToggleFollow(ctx, fans[1], infID, false); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	count, err = f.influencers.FollowerCount(ctx, infID)
	if err != nil {
		t.Fatalf("follower count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 followers after unfollow, got %d", count)
	}

	followers, err := f.influencers.Followers(ctx, infID)
	if err != nil {
		t.Fatalf("followers: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("expected 2 follower views, got %d", len(followers))
	}
}

func TestListSortsByFollowers(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	_, lowID := f.makeInfluencer(t, "low", "Keto")
	_, highID := f.makeInfluencer(t, "high", "Keto")

	for i := 0; i < 2; i++ {
		fan := f.registerUser(t, fmt.Sprintf("fan%d", i))
		if err := f.users.ToggleFollow(ctx, fan, highID, true); err != nil {
			t.Fatalf("follow high: %v", err)
		}
		if i == 0 {
			if err := f.users.ToggleFollow(ctx, fan, lowID, true); err != nil {
				t.Fatalf("follow low: %v", err)
			}
		}
	}

	result, err := f.influencers.List(ctx, ListInfluencersInput{SortBy: SortFollowers})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected total 2, got %d", result.Total)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	first := result.Items[0]["user"].(map[string]interface{})
	if first["username"] != "high" {
		t.Fatalf("expected high first, got %v", first["username"])
	}
	if result.Items[0]["followers_count"] != int64(2) {
		t.Fatalf("expected followers_count 2, got %v", result.Items[0]["followers_count"])
	}
}

func TestListSortsByFollowersAcrossPages(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	// Five influencers with follower counts 4,3,2,1,0.
	infIDs := make([]models.InfluencerID, 5)
	for i := range infIDs {
		_, infIDs[i] = f.makeInfluencer(t, fmt.Sprintf("chef%d", i), "Keto")
	}
	for i := 0; i < 4; i++ {
		fan := f.registerUser(t, fmt.Sprintf("fan%d", i))
		for j := 0; j < 4-i; j++ {
			if err := f.users.ToggleFollow(ctx, fan, infIDs[j], true); err != nil {
				t.Fatalf("follow: %v", err)
			}
		}
	}

	var usernames []string
	var counts []int64
	page := 1
	for {
		result, err := f.influencers.List(ctx, ListInfluencersInput{
			Page:    page,
			PerPage: 2,
			SortBy:  SortFollowers,
		})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if result.Total != 5 {
			t.Fatalf("expected total 5, got %d", result.Total)
		}
		if result.Pages != 3 {
			t.Fatalf("expected 3 pages, got %d", result.Pages)
		}
		for _, item := range result.Items {
			user := item["user"].(map[string]interface{})
			usernames = append(usernames, user["username"].(string))
			counts = append(counts, item["followers_count"].(int64))
		}
		if page >= result.Pages {
			break
		}
		page++
	}

	if len(usernames) != 5 {
		t.Fatalf("pagination lost items: saw %d of 5", len(usernames))
	}
	for i := range usernames {
		want := fmt.Sprintf("chef%d", i)
		if usernames[i] != want {
			t.Fatalf("position %d: expected %s, got %s (order %v)", i, want, usernames[i], usernames)
		}
		if counts[i] != int64(4-i) {
			t.Fatalf("position %d: expected count %d, got %d", i, 4-i, counts[i])
		}
	}
}

func TestListFiltersBySpecialty(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	f.makeInfluencer(t, "chef1", "Keto Nutrition")
	f.makeInfluencer(t, "chef2", "Vegan Cooking")

	result, err := f.influencers.List(ctx, ListInfluencersInput{Specialty: "keto"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("expected a single keto match, got %d", result.Total)
	}
	if result.Items[0]["specialty"] != "Keto Nutrition" {
		t.Fatalf("unexpected match %v", result.Items[0]["specialty"])
	}
}

func TestListPaginationIsComplete(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		f.makeInfluencer(t, fmt.Sprintf("chef%d", i), "Keto")
	}

	seen := map[string]bool{}
	page := 1
	for {
		result, err := f.influencers.List(ctx, ListInfluencersInput{Page: page, PerPage: 2})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if result.Total != 5 {
			t.Fatalf("expected total 5, got %d", result.Total)
		}
		if result.Pages != 3 {
			t.Fatalf("expected 3 pages, got %d", result.Pages)
		}
		for _, item := range result.Items {
			id := item["id"].(string)
			if seen[id] {
				t.Fatalf("influencer %s appeared twice", id)
			}
			seen[id] = true
		}
		if page >= result.Pages {
			break
		}
		page++
	}
	if len(seen) != 5 {
		t.Fatalf("pagination lost items: saw %d of 5", len(seen))
	}
}

func TestUpdateProfilePatch(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	userID, _ := f.makeInfluencer(t, "chef", "Keto")

	verified := true
	view, err := f.influencers.UpdateProfile(ctx, userID, models.InfluencerPatch{Verified: &verified})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view["verified"] != true {
		t.Fatal("expected verified true")
	}
	if view["specialty"] != "Keto" {
		t.Fatalf("specialty must survive a partial update, got %v", view["specialty"])
	}
}

func TestSpecialties(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	f.makeInfluencer(t, "chef1", "Keto")
	f.makeInfluencer(t, "chef2", "Vegan")
	f.makeInfluencer(t, "chef3", "Keto")

	specialties, err := f.influencers.Specialties(ctx)
	if err != nil {
		t.Fatalf("specialties: %v", err)
	}
	if len(specialties) != 2 {
		t.Fatalf("expected 2 distinct specialties, got %v", specialties)
	}
}
