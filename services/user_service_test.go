package services

import (
	"context"
	"errors"
	"testing"

	"github.com/VIJAYRUR/fitfoodie-backend/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	id, view, err := f.users.Register(ctx, RegisterInput{
		Username:           "alice",
		Email:              "alice@example.com",
		Password:           "secret123",
		Name:               "Alice",
		DietaryPreferences: []string{"vegan", " vegan ", "keto"},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if view["username"] != "alice" {
		t.Fatalf("expected username alice, got %v", view["username"])
	}
	if _, leaked := view["password_hash"]; leaked {
		t.Fatal("view must not contain the password hash")
	}
	if prefs := view["dietary_preferences"].([]string); len(prefs) != 2 {
		t.Fatalf("expected deduplicated preferences, got %v", prefs)
	}
	if view["is_influencer"] != false {
		t.Fatal("registration must never grant influencer status")
	}

	gotID, _, err := f.users.Authenticate(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if gotID != id {
		t.Fatalf("expected id %s, got %s", id, gotID)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	f.registerUser(t, "alice")

	_, _, err := f.users.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for username, got %v", err)
	}

	_, _, err = f.users.Register(ctx, RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for email, got %v", err)
	}
}

func TestRegisterRequiresCredentials(t *testing.T) {
	f := newFixture(nil)
	_, _, err := f.users.Register(context.Background(), RegisterInput{Username: "alice"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthenticateFailsUniformly(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	f.registerUser(t, "alice")

	_, _, wrongPassword := f.users.Authenticate(ctx, "alice", "nope")
	_, _, noSuchUser := f.users.Authenticate(ctx, "ghost", "secret123")

	if !errors.Is(wrongPassword, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", wrongPassword)
	}
	// A probe must not learn whether the account exists.
	if wrongPassword.Error() != noSuchUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword, noSuchUser)
	}
}

func TestUpdateProfileMergesOnlyPatchedFields(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	id := f.registerUser(t, "alice")

	bio := "meal prep enthusiast"
	height := 170.5
	view, err := f.users.UpdateProfile(ctx, id, models.UserPatch{Bio: &bio, Height: &height})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view["bio"] != bio {
		t.Fatalf("expected bio %q, got %v", bio, view["bio"])
	}
	if view["height"] != height {
		t.Fatalf("expected height %v, got %v", height, view["height"])
	}
	// Fields the patch did not carry stay intact.
	if view["name"] != "Test alice" {
		t.Fatalf("name must survive a partial update, got %v", view["name"])
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	id := f.registerUser(t, "alice")

	if err := f.users.ChangePassword(ctx, id, "wrong", "newsecret"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if err := f.users.ChangePassword(ctx, id, "secret123", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if err := f.users.ChangePassword(ctx, id, "secret123", "newsecret"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := f.users.Authenticate(ctx, "alice", "secret123"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatal("old password must stop working")
	}
	if _, _, err := f.users.Authenticate(ctx, "alice", "newsecret"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}

func TestToggleFavoriteIsIdempotent(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	userID := f.registerUser(t, "fan")
	_, infID := f.makeInfluencer(t, "chef", "keto")
	mealID := f.publishMeal(t, infID, "Avocado Bowl")

	for i := 0; i < 3; i++ {
		if err := f.users.ToggleFavorite(ctx, userID, mealID, true); err != nil {
			t.Fatalf("favorite round %d: %v", i, err)
		}
	}
	favorites, err := f.users.ListFavorites(ctx, userID)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("expected one favorite after repeated adds, got %d", len(favorites))
	}

	// Removing twice is equally a no-op success.
	for i := 0; i < 2; i++ {
		if err := f.users.ToggleFavorite(ctx, userID, mealID, false); err != nil {
			t.Fatalf("unfavorite round %d: %v", i, err)
		}
	}
	favorites, err = f.users.ListFavorites(ctx, userID)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("expected empty favorites, got %d", len(favorites))
	}
}

func TestToggleFavoriteChecksTargetOnlyOnAdd(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	userID := f.registerUser(t, "fan")
	_, infID := f.makeInfluencer(t, "chef", "keto")
	mealID := f.publishMeal(t, infID, "Avocado Bowl")

	if err := f.users.ToggleFavorite(ctx, userID, mealID, true); err != nil {
		t.Fatalf("favorite: %v", err)
	}
	if err := f.meals.Delete(ctx, mealID, infID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}

	// The dangling reference is invisible to readers and still removable.
	favorites, err := f.users.ListFavorites(ctx, userID)
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("deleted meal must be skipped, got %d items", len(favorites))
	}
	if err := f.users.ToggleFavorite(ctx, userID, mealID, false); err != nil {
		t.Fatalf("removing a dangling favorite must succeed: %v", err)
	}

	// Adding it back fails: the target no longer exists.
	if err := f.users.ToggleFavorite(ctx, userID, mealID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFollowingEmbedsUser(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	userID := f.registerUser(t, "fan")
	_, infID := f.makeInfluencer(t, "chef", "keto")

	if err := f.users.ToggleFollow(ctx, userID, infID, true); err != nil {
		t.Fatalf("follow: %v", err)
	}
	following, err := f.users.ListFollowing(ctx, userID)
	if err != nil {
		t.Fatalf("list following: %v", err)
	}
	if len(following) != 1 {
		t.Fatalf("expected one followed influencer, got %d", len(following))
	}
	user, ok := following[0]["user"].(map[string]interface{})
	if !ok {
		t.Fatal("expected embedded user view")
	}
	if user["username"] != "chef" {
		t.Fatalf("expected chef, got %v", user["username"])
	}
}
