package indexes_test

import (
	"testing"

	"github.com/wearlab/watchclub/internal/app/system/indexes"
	"github.com/wearlab/watchclub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}

	// Second call should also succeed (idempotent)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesExpectedIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	cases := []struct {
		collection string
		indexName  string
	}{
		{"faqs", "idx_faqs_active_category"},
		{"qna", "idx_qna_active_category"},
		{"qna", "idx_qna_created"},
		{"qna_answers", "idx_answers_question_active"},
		{"users", "idx_users_email"},
		{"friend_posts", "idx_friendposts_active_expires"},
		{"friend_posts", "idx_friendposts_display_id"},
		{"oauth_states", "idx_oauth_state"},
		{"oauth_states", "idx_oauth_ttl"},
		{"login_records", "idx_logins_user_created"},
	}

	for _, tc := range cases {
		cur, err := db.Collection(tc.collection).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("List indexes on %s failed: %v", tc.collection, err)
		}

		found := false
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				continue
			}
			if name, ok := idx["name"].(string); ok && name == tc.indexName {
				found = true
			}
		}
		cur.Close(ctx)

		if !found {
			t.Errorf("%s: expected index %q to exist", tc.collection, tc.indexName)
		}
	}
}
