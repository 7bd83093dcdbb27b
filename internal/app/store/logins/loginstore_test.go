package loginstore_test

import (
	"net/http/httptest"
	"testing"
	"time"

	loginstore "github.com/wearlab/watchclub/internal/app/store/logins"
	"github.com/wearlab/watchclub/internal/domain/models"
	"github.com/wearlab/watchclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := models.LoginRecord{
		UserID:   "google-123",
		Email:    "alice@example.com",
		IP:       "192.168.1.1",
		Provider: "google",
	}

	if err := store.Create(ctx, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var found models.LoginRecord
	err := db.Collection("login_records").FindOne(ctx, bson.M{"user_id": "google-123"}).Decode(&found)
	if err != nil {
		t.Fatalf("failed to find login record: %v", err)
	}

	if found.Email != "alice@example.com" {
		t.Errorf("Email: got %q", found.Email)
	}
	if found.Provider != "google" {
		t.Errorf("Provider: got %q, want %q", found.Provider, "google")
	}
	// CreatedAt should be set automatically
	if found.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_WithExplicitTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	customTime := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
	rec := models.LoginRecord{
		UserID:    "google-456",
		CreatedAt: customTime,
		IP:        "10.0.0.1",
		Provider:  "google",
	}

	if err := store.Create(ctx, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var found models.LoginRecord
	err := db.Collection("login_records").FindOne(ctx, bson.M{"user_id": "google-456"}).Decode(&found)
	if err != nil {
		t.Fatalf("failed to find login record: %v", err)
	}
	if !found.CreatedAt.Equal(customTime) {
		t.Errorf("CreatedAt: got %v, want %v", found.CreatedAt, customTime)
	}
}

func TestStore_CreateFrom_ProxyHeaders(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := httptest.NewRequest("GET", "/auth/google/callback", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.Header.Set("User-Agent", "test-agent/1.0")

	if err := store.CreateFrom(ctx, r, "google-789", "bob@example.com", "google"); err != nil {
		t.Fatalf("CreateFrom failed: %v", err)
	}

	var found models.LoginRecord
	err := db.Collection("login_records").FindOne(ctx, bson.M{"user_id": "google-789"}).Decode(&found)
	if err != nil {
		t.Fatalf("failed to find login record: %v", err)
	}
	if found.IP != "203.0.113.7" {
		t.Errorf("IP: got %q, want first XFF entry", found.IP)
	}
	if found.UserAgent != "test-agent/1.0" {
		t.Errorf("UserAgent: got %q", found.UserAgent)
	}
}

func TestStore_Create_MultipleRecordsSameUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		rec := models.LoginRecord{
			UserID:   "google-repeat",
			IP:       "192.168.1.1",
			Provider: "google",
		}
		if err := store.Create(ctx, rec); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	count, err := db.Collection("login_records").CountDocuments(ctx, bson.M{"user_id": "google-repeat"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 login records, got %d", count)
	}
}
