package userstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store mediates access to the users collection. Documents are keyed by
// the identity provider's uid, not an ObjectID.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// ErrNotFound is returned when no profile exists for the given uid.
var ErrNotFound = errors.New("user profile not found")

// GetProfile returns the profile for uid.
func (s *Store) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListAll returns every profile, newest account first. The user base is
// small enough that sorting client-side keeps the query index-free.
func (s *Store) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var profiles []models.UserProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	return profiles, nil
}

// SetAdminStatus grants or revokes the admin flag. This is the only
// write path that touches is_admin.
func (s *Store) SetAdminStatus(ctx context.Context, uid string, isAdmin bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"is_admin": isAdmin, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileUpdate holds the user-editable profile fields.
type ProfileUpdate struct {
	DisplayName *string
	PhotoURL    *string
}

// UpdateProfile merges the given fields into an existing profile.
func (s *Store) UpdateProfile(ctx context.Context, uid string, upd ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.DisplayName != nil {
		set["display_name"] = *upd.DisplayName
	}
	if upd.PhotoURL != nil {
		set["photo_url"] = *upd.PhotoURL
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// LoginIdentity is what the identity provider asserts about a user at
// sign-in time.
type LoginIdentity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// UpsertOnLogin records a sign-in. A first login creates the profile as
// a regular member. Subsequent logins refresh only the identity and
// login-time fields; is_admin is never written here, so a grant made
// through SetAdminStatus survives every later sign-in.
func (s *Store) UpsertOnLogin(ctx context.Context, id LoginIdentity) (*models.UserProfile, error) {
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"email":        id.Email,
			"display_name": id.DisplayName,
			"photo_url":    id.PhotoURL,
			"last_login":   now,
			"updated_at":   now,
		},
		"$setOnInsert": bson.M{
			"is_admin":   false,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var p models.UserProfile
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id.UID}, update, opts).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
