// internal/domain/models/friendpost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendPost is a "find a training partner" board entry.
//
// DisplayID is a human-facing sequential number assigned at creation time
// as max(existing)+1. It is not guaranteed unique under concurrent
// creation; the Mongo _id remains the real key.
//
// A post is visible only while IsActive is true AND ExpiresAt is strictly
// in the future. Expiry is enforced by read-time filtering; a periodic
// sweep flips IsActive on posts past their expiration.
type FriendPost struct {
	DocID     primitive.ObjectID `bson:"_id,omitempty" json:"doc_id"`
	DisplayID int                `bson:"id" json:"id"`

	Name         string   `bson:"name" json:"name"`
	Introduction string   `bson:"introduction" json:"introduction"`
	ProfileURL   string   `bson:"profile_url,omitempty" json:"profile_url,omitempty"`
	Location     string   `bson:"location,omitempty" json:"location,omitempty"`
	Activities   []string `bson:"activities" json:"activities"`

	Author      string   `bson:"author" json:"author"`
	AuthorName  string   `bson:"author_name" json:"author_name"`
	AuthorPhoto string   `bson:"author_photo,omitempty" json:"author_photo,omitempty"`
	Likes       int      `bson:"likes" json:"likes"`
	LikedBy     []string `bson:"liked_by" json:"liked_by"`
	IsActive    bool     `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}
