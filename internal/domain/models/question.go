// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is a community Q&A thread.
//
// AuthorName and AuthorPhoto are denormalized copies of the author's
// profile at posting time; they are not refreshed if the profile changes
// later. Likes and LikedBy are kept mutually consistent by the store
// (likes == len(liked_by) on every write).
//
// AnswerCount is a denormalized counter maintained with $inc on answer
// create/delete. Read paths recompute the displayed count from the live
// answers collection, so drift from a failed second write self-heals on
// the next listing.
type Question struct {
	DocID    primitive.ObjectID `bson:"_id,omitempty" json:"doc_id"`
	Title    string             `bson:"title" json:"title"`
	Question string             `bson:"question" json:"question"`
	Category string             `bson:"category" json:"category"` // troubleshoot | features | setup | tips | general
	Tags     []string           `bson:"tags,omitempty" json:"tags,omitempty"`

	Author      string   `bson:"author" json:"author"`
	AuthorName  string   `bson:"author_name" json:"author_name"`
	AuthorPhoto string   `bson:"author_photo,omitempty" json:"author_photo,omitempty"`
	Likes       int      `bson:"likes" json:"likes"`
	LikedBy     []string `bson:"liked_by" json:"liked_by"`
	AnswerCount int      `bson:"answer_count" json:"answer_count"`
	IsActive    bool     `bson:"is_active" json:"is_active"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	DeletedBy string     `bson:"deleted_by,omitempty" json:"deleted_by,omitempty"`

	// Answers is populated by read paths from the answers collection;
	// it is never stored on the question document itself.
	Answers []Answer `bson:"-" json:"answers"`
}

// Answer is a reply within a Q&A thread. Answers live in their own
// collection keyed by QuestionID and follow the same active/deleted
// lifecycle and like bookkeeping as questions.
type Answer struct {
	DocID      primitive.ObjectID `bson:"_id,omitempty" json:"doc_id"`
	QuestionID primitive.ObjectID `bson:"question_id" json:"question_id"`
	Content    string             `bson:"content" json:"content"`

	Author      string   `bson:"author" json:"author"`
	AuthorName  string   `bson:"author_name" json:"author_name"`
	AuthorPhoto string   `bson:"author_photo,omitempty" json:"author_photo,omitempty"`
	Likes       int      `bson:"likes" json:"likes"`
	LikedBy     []string `bson:"liked_by" json:"liked_by"`
	IsActive    bool     `bson:"is_active" json:"is_active"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
	DeletedBy string     `bson:"deleted_by,omitempty" json:"deleted_by,omitempty"`
}
