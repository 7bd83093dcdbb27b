package friendpoststore_test

import (
	"errors"
	"testing"
	"time"

	friendpoststore "github.com/wearlab/watchclub/internal/app/store/friendposts"
	"github.com/wearlab/watchclub/internal/domain/models"
	"github.com/wearlab/watchclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_List_ExcludesExpiredAndInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := friendpoststore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	future := time.Now().UTC().Add(24 * time.Hour)
	visible := f.CreateFriendPost(ctx, 1, "user-1", future)
	f.CreateFriendPost(ctx, 2, "user-1", time.Now().UTC().Add(-time.Minute))

	hidden := f.CreateFriendPost(ctx, 3, "user-1", future)
	if _, err := db.Collection("friend_posts").UpdateOne(ctx,
		bson.M{"_id": hidden.DocID}, bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		t.Fatalf("deactivating post failed: %v", err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].DocID != visible.DocID {
		t.Fatalf("expected only the unexpired active post, got %d results", len(got))
	}
}

func TestStore_NextDisplayID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := friendpoststore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	n, err := store.NextDisplayID(ctx)
	if err != nil {
		t.Fatalf("NextDisplayID failed: %v", err)
	}
	if n != 1 {
		t.Errorf("empty board: got %d, want 1", n)
	}

	f.CreateFriendPost(ctx, 7, "user-1", time.Now().UTC().Add(time.Hour))

	// Soft-deleted posts keep their numbers reserved.
	retired := f.CreateFriendPost(ctx, 12, "user-1", time.Now().UTC().Add(time.Hour))
	if _, err := db.Collection("friend_posts").UpdateOne(ctx,
		bson.M{"_id": retired.DocID}, bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		t.Fatalf("deactivating post failed: %v", err)
	}

	n, err = store.NextDisplayID(ctx)
	if err != nil {
		t.Fatalf("NextDisplayID failed: %v", err)
	}
	if n != 13 {
		t.Errorf("got %d, want 13", n)
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := friendpoststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	expiresOn := time.Now().UTC().Add(72 * time.Hour).Format("2006-01-02")
	id, err := store.Create(ctx, models.FriendPost{
		Name:         "Trail crew",
		Introduction: "Weekend trail runs around the city.",
		Location:     "Seoul",
		Activities:   []string{"러닝", "트레일러닝"},
		Author:       "user-1",
		AuthorName:   "Alice",
		Likes:        44, // must be ignored
	}, expiresOn)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.DisplayID != 1 {
		t.Errorf("DisplayID: got %d, want 1", got.DisplayID)
	}
	if got.Likes != 0 || len(got.LikedBy) != 0 {
		t.Errorf("expected zeroed likes, got %d / %v", got.Likes, got.LikedBy)
	}
	if !got.ExpiresAt.After(time.Now().UTC()) {
		t.Errorf("expected a future expiry, got %v", got.ExpiresAt)
	}

	second, err := store.Create(ctx, models.FriendPost{
		Name: "Cycling group", Introduction: "x", Author: "user-2",
	}, expiresOn)
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	p2, _ := store.Get(ctx, second)
	if p2.DisplayID != 2 {
		t.Errorf("sequential display id: got %d, want 2", p2.DisplayID)
	}

	if _, err := store.Create(ctx, models.FriendPost{Name: "bad"}, "03-08-2026"); !errors.Is(err, friendpoststore.ErrBadExpiry) {
		t.Errorf("expected ErrBadExpiry for a malformed expiration date, got %v", err)
	}
}

func TestStore_Update_OwnerOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := friendpoststore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := f.CreateFriendPost(ctx, 1, "user-1", time.Now().UTC().Add(time.Hour))

	intro := "Updated introduction"
	err := store.Update(ctx, p.DocID, friendpoststore.Update{Introduction: &intro}, "user-2", false)
	if !errors.Is(err, friendpoststore.ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for non-author, got %v", err)
	}

	if err := store.Update(ctx, p.DocID, friendpoststore.Update{Introduction: &intro}, "user-1", false); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}

	got, err := store.Get(ctx, p.DocID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Introduction != intro {
		t.Errorf("Introduction: got %q", got.Introduction)
	}
	if got.Name != p.Name {
		t.Errorf("untouched field changed: %q", got.Name)
	}
}

func TestStore_SoftDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := friendpoststore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := f.CreateFriendPost(ctx, 1, "user-1", time.Now().UTC().Add(time.Hour))

	if err := store.SoftDelete(ctx, p.DocID, "user-2", false); !errors.Is(err, friendpoststore.ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}

	// Admin may remove someone else's post.
	if err := store.SoftDelete(ctx, p.DocID, "admin-uid", true); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, err := store.Get(ctx, p.DocID); !errors.Is(err, friendpoststore.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.SoftDelete(ctx, p.DocID, "admin-uid", true); !errors.Is(err, friendpoststore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestStore_ToggleLike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := friendpoststore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := f.CreateFriendPost(ctx, 1, "user-1", time.Now().UTC().Add(time.Hour))

	liked, err := store.ToggleLike(ctx, p.DocID, "user-2")
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !liked {
		t.Error("first toggle should like")
	}

	liked, err = store.ToggleLike(ctx, p.DocID, "user-2")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike")
	}

	got, err := store.Get(ctx, p.DocID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Likes != 0 || len(got.LikedBy) != 0 {
		t.Errorf("after toggle pair: likes=%d liked_by=%v", got.Likes, got.LikedBy)
	}

	if _, err := store.ToggleLike(ctx, primitive.NewObjectID(), "user-2"); !errors.Is(err, friendpoststore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown post, got %v", err)
	}
}

func TestStore_CleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := friendpoststore.New(db)
	f := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateFriendPost(ctx, 1, "user-1", time.Now().UTC().Add(-time.Hour))
	f.CreateFriendPost(ctx, 2, "user-1", time.Now().UTC().Add(-time.Minute))
	keep := f.CreateFriendPost(ctx, 3, "user-1", time.Now().UTC().Add(time.Hour))

	n, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if n != 2 {
		t.Errorf("swept count: got %d, want 2", n)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].DocID != keep.DocID {
		t.Fatalf("expected only the future post to survive, got %d", len(got))
	}

	// Idempotent: nothing left to sweep.
	n, err = store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("second CleanupExpired failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second sweep: got %d, want 0", n)
	}
}
