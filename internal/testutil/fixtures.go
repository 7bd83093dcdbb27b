package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProfile creates a test user profile keyed by uid.
func (f *Fixtures) CreateProfile(ctx context.Context, uid, name, email string, isAdmin bool) models.UserProfile {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: name,
		IsAdmin:     isAdmin,
		CreatedAt:   now,
		LastLogin:   now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// CreateQuestion inserts an active question authored by the given uid.
func (f *Fixtures) CreateQuestion(ctx context.Context, title, authorUID, authorName string) models.Question {
	f.t.Helper()

	now := time.Now().UTC()
	q := models.Question{
		DocID:      primitive.NewObjectID(),
		Title:      title,
		Question:   "fixture question body",
		Category:   "general",
		Author:     authorUID,
		AuthorName: authorName,
		LikedBy:    []string{},
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("qna").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// CreateAnswer inserts an active answer beneath the given question.
// It writes the answer document only; the parent's answer_count is
// intentionally left alone so counter behavior can be tested separately.
func (f *Fixtures) CreateAnswer(ctx context.Context, questionID primitive.ObjectID, content, authorUID string) models.Answer {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Answer{
		DocID:      primitive.NewObjectID(),
		QuestionID: questionID,
		Content:    content,
		Author:     authorUID,
		AuthorName: "Fixture Answerer",
		LikedBy:    []string{},
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("qna_answers").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test answer: %v", err)
	}
	return a
}

// CreateFriendPost inserts an active friend post expiring at the given time.
func (f *Fixtures) CreateFriendPost(ctx context.Context, displayID int, authorUID string, expiresAt time.Time) models.FriendPost {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.FriendPost{
		DocID:        primitive.NewObjectID(),
		DisplayID:    displayID,
		Name:         "Fixture Friend",
		Introduction: "fixture introduction",
		Activities:   []string{"러닝"},
		Author:       authorUID,
		AuthorName:   "Fixture Author",
		LikedBy:      []string{},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    expiresAt,
	}

	if _, err := f.db.Collection("friend_posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test friend post: %v", err)
	}
	return p
}
