package friendpoststore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store mediates access to the friend_posts collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("friend_posts")}
}

var (
	// ErrNotFound is returned when the referenced post does not exist,
	// has been soft-deleted, or has expired.
	ErrNotFound = errors.New("friend post not found")

	// ErrNotAllowed is returned when the acting user is neither the
	// author of the post nor an admin.
	ErrNotAllowed = errors.New("friend post: not allowed")

	// ErrBadExpiry is returned when the expiration date does not parse
	// as YYYY-MM-DD.
	ErrBadExpiry = errors.New("friend post: invalid expiration date")
)

// expiryDateLayout is the wire format for a post's expiration date. The
// parsed date marks the last visible day; the post disappears at the
// start of the following day UTC.
const expiryDateLayout = "2006-01-02"

// List returns posts that are active and not yet expired, newest first.
// Expiry is strict: a post whose expires_at equals now is already gone.
func (s *Store) List(ctx context.Context) ([]models.FriendPost, error) {
	filter := bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.FriendPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// Get returns a single visible post.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (*models.FriendPost, error) {
	var p models.FriendPost
	err := s.c.FindOne(ctx, bson.M{
		"_id":        id,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// NextDisplayID returns one past the highest display id ever assigned,
// or 1 for an empty board. Soft-deleted posts still count so numbers are
// never reissued. Two concurrent creates can race to the same number;
// the display id is cosmetic and _id stays the real key.
func (s *Store) NextDisplayID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var top struct {
		DisplayID int `bson:"id"`
	}
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return top.DisplayID + 1, nil
}

// Create inserts a new post. expiresOn is the last visible day in
// YYYY-MM-DD form. Author fields on p must already be filled in.
func (s *Store) Create(ctx context.Context, p models.FriendPost, expiresOn string) (primitive.ObjectID, error) {
	day, err := time.ParseInLocation(expiryDateLayout, expiresOn, time.UTC)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrBadExpiry, expiresOn)
	}

	displayID, err := s.NextDisplayID(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now().UTC()
	p.DocID = primitive.NewObjectID()
	p.DisplayID = displayID
	p.Likes = 0
	p.LikedBy = []string{}
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	p.ExpiresAt = day.AddDate(0, 0, 1)
	if p.Activities == nil {
		p.Activities = []string{}
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return primitive.NilObjectID, err
	}
	return p.DocID, nil
}

// Update holds the editable fields of a friend post.
type Update struct {
	Name         *string
	Introduction *string
	ProfileURL   *string
	Location     *string
	Activities   []string
	ExpiresOn    *string // YYYY-MM-DD
}

// Update merges the given fields into a visible post owned by actorID
// (admins may edit any post).
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update, actorID string, isAdmin bool) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Author != actorID && !isAdmin {
		return ErrNotAllowed
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Introduction != nil {
		set["introduction"] = *upd.Introduction
	}
	if upd.ProfileURL != nil {
		set["profile_url"] = *upd.ProfileURL
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Activities != nil {
		set["activities"] = upd.Activities
	}
	if upd.ExpiresOn != nil {
		day, err := time.ParseInLocation(expiryDateLayout, *upd.ExpiresOn, time.UTC)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadExpiry, *upd.ExpiresOn)
		}
		set["expires_at"] = day.AddDate(0, 0, 1)
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "is_active": true}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete hides a post. Only the author or an admin may delete.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID, actorID string, isAdmin bool) error {
	var p models.FriendPost
	err := s.c.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if p.Author != actorID && !isAdmin {
		return ErrNotAllowed
	}

	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	return err
}

// ToggleLike adds or removes uid from the post's liked_by set and keeps
// the counter in step. Returns true when the user now likes the post.
func (s *Store) ToggleLike(ctx context.Context, id primitive.ObjectID, uid string) (bool, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	liked := false
	for _, u := range p.LikedBy {
		if u == uid {
			liked = true
			break
		}
	}

	var likedBy []string
	delta := 1
	if liked {
		likedBy = make([]string, 0, len(p.LikedBy))
		for _, u := range p.LikedBy {
			if u != uid {
				likedBy = append(likedBy, u)
			}
		}
		delta = -1
	} else {
		likedBy = append(p.LikedBy, uid)
	}

	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{
			"$inc": bson.M{"likes": delta},
			"$set": bson.M{"liked_by": likedBy, "updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return !liked, nil
}

// CleanupExpired soft-deletes every active post whose expiration has
// passed and returns how many were swept. Read paths already hide these;
// the sweep keeps the active set small.
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res, err := s.c.UpdateMany(ctx,
		bson.M{"is_active": true, "expires_at": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
