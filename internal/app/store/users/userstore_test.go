package userstore_test

import (
	"errors"
	"testing"
	"time"

	userstore "github.com/wearlab/watchclub/internal/app/store/users"
	"github.com/wearlab/watchclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_UpsertOnLogin_FirstLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.UpsertOnLogin(ctx, userstore.LoginIdentity{
		UID:         "google-123",
		Email:       "alice@example.com",
		DisplayName: "Alice",
		PhotoURL:    "https://example.com/alice.png",
	})
	if err != nil {
		t.Fatalf("UpsertOnLogin failed: %v", err)
	}

	if p.UID != "google-123" || p.Email != "alice@example.com" {
		t.Errorf("unexpected profile: %+v", p)
	}
	if p.IsAdmin {
		t.Error("first login must create a regular member")
	}
	if p.CreatedAt.IsZero() || p.LastLogin.IsZero() {
		t.Error("expected created_at and last_login to be stamped")
	}
}

func TestStore_UpsertOnLogin_PreservesAdminFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.UpsertOnLogin(ctx, userstore.LoginIdentity{
		UID: "google-123", Email: "alice@example.com", DisplayName: "Alice",
	}); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if err := store.SetAdminStatus(ctx, "google-123", true); err != nil {
		t.Fatalf("SetAdminStatus failed: %v", err)
	}

	// A later login refreshes identity fields but must not demote.
	p, err := store.UpsertOnLogin(ctx, userstore.LoginIdentity{
		UID: "google-123", Email: "alice.new@example.com", DisplayName: "Alice N",
	})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if !p.IsAdmin {
		t.Error("admin grant lost on re-login")
	}
	if p.Email != "alice.new@example.com" || p.DisplayName != "Alice N" {
		t.Errorf("identity fields not refreshed: %+v", p)
	}
}

func TestStore_UpsertOnLogin_UpdatesLastLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.UpsertOnLogin(ctx, userstore.LoginIdentity{UID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}

	// Backdate so the refresh is observable at Mongo's time resolution.
	old := time.Now().UTC().Add(-time.Hour)
	if _, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": "u1"}, bson.M{"$set": bson.M{"last_login": old}}); err != nil {
		t.Fatalf("backdating last_login failed: %v", err)
	}

	second, err := store.UpsertOnLogin(ctx, userstore.LoginIdentity{UID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if !second.LastLogin.After(old) {
		t.Error("expected last_login to be refreshed")
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed on re-login: %v vs %v", second.CreatedAt, first.CreatedAt)
	}
}

func TestStore_GetProfile_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetProfile(ctx, "nobody"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListAll_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateProfile(ctx, "u-old", "Old User", "old@example.com", false)
	f.CreateProfile(ctx, "u-new", "New User", "new@example.com", false)
	if _, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": "u-old"},
		bson.M{"$set": bson.M{"created_at": time.Now().UTC().Add(-time.Hour)}}); err != nil {
		t.Fatalf("backdating profile failed: %v", err)
	}

	got, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}
	if got[0].UID != "u-new" {
		t.Errorf("expected newest account first, got %q", got[0].UID)
	}
}

func TestStore_SetAdminStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateProfile(ctx, "u1", "Alice", "alice@example.com", false)

	if err := store.SetAdminStatus(ctx, "u1", true); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	p, err := store.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !p.IsAdmin {
		t.Error("expected IsAdmin=true after grant")
	}

	if err := store.SetAdminStatus(ctx, "u1", false); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	p, _ = store.GetProfile(ctx, "u1")
	if p.IsAdmin {
		t.Error("expected IsAdmin=false after revoke")
	}

	if err := store.SetAdminStatus(ctx, "nobody", true); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown uid, got %v", err)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateProfile(ctx, "u1", "Alice", "alice@example.com", false)

	name := "Alice Runner"
	if err := store.UpdateProfile(ctx, "u1", userstore.ProfileUpdate{DisplayName: &name}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	p, err := store.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.DisplayName != "Alice Runner" {
		t.Errorf("DisplayName: got %q", p.DisplayName)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("untouched field changed: %q", p.Email)
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateProfile(ctx, "u1", "Alice", "alice@example.com", true)

	fetcher := userstore.NewFetcher(store)
	u := fetcher.FetchUser(ctx, "u1")
	if u == nil {
		t.Fatal("expected a session user")
	}
	if u.ID != "u1" || !u.IsAdmin {
		t.Errorf("unexpected session user: %+v", u)
	}

	if fetcher.FetchUser(ctx, "missing") != nil {
		t.Error("expected nil for unknown uid")
	}
}
