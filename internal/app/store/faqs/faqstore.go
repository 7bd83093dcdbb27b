package faqstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store mediates access to the faqs collection. It holds no state of its
// own; every operation is a direct call against MongoDB.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("faqs")}
}

// ErrNotFound is returned when the referenced FAQ does not exist or has
// been soft-deleted.
var ErrNotFound = errors.New("faq not found")

// List returns all active FAQs ordered by display id ascending.
// Sorting happens client-side after the fetch; the query itself stays on
// the single-field is_active index.
func (s *Store) List(ctx context.Context) ([]models.FAQ, error) {
	return s.list(ctx, bson.M{"is_active": true})
}

// ListByCategory returns active FAQs in the given category, ordered by
// display id ascending.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]models.FAQ, error) {
	return s.list(ctx, bson.M{"is_active": true, "category": category})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.FAQ, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var faqs []models.FAQ
	if err := cur.All(ctx, &faqs); err != nil {
		return nil, err
	}

	sort.Slice(faqs, func(i, j int) bool {
		return faqs[i].DisplayID < faqs[j].DisplayID
	})
	return faqs, nil
}

// Create inserts a new active FAQ authored by actorID and returns the
// document id. Field validation beyond presence is the caller's job.
func (s *Store) Create(ctx context.Context, f models.FAQ, actorID string) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	f.DocID = primitive.NewObjectID()
	f.IsActive = true
	f.CreatedAt = now
	f.UpdatedAt = now
	f.CreatedBy = actorID
	if f.Tags == nil {
		f.Tags = []string{}
	}

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return primitive.NilObjectID, err
	}
	return f.DocID, nil
}

// Update holds the editable fields of an FAQ.
type Update struct {
	DisplayID *int
	Category  *string
	Question  *string
	Answer    *string
	Tags      []string
}

// Update merges the given fields into an active FAQ and stamps the
// updater. Soft-deleted documents are not resurrected: the filter
// requires is_active=true and a miss reports ErrNotFound.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update, actorID string) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
		"updated_by": actorID,
	}
	if upd.DisplayID != nil {
		set["id"] = *upd.DisplayID
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Question != nil {
		set["question"] = *upd.Question
	}
	if upd.Answer != nil {
		set["answer"] = *upd.Answer
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
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

// SoftDelete flips the active flag. There is no public undelete.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ConvertFromQA builds a new FAQ out of a Q&A question and, optionally,
// one of its answers. With no chosen answer the original question body
// becomes the FAQ answer text. The source thread is left untouched; the
// provenance block records where the FAQ came from.
func (s *Store) ConvertFromQA(ctx context.Context, q models.Question, chosen *models.Answer, actorID string) (primitive.ObjectID, error) {
	now := time.Now().UTC()

	answer := q.Question
	prov := &models.ConvertedFrom{
		QnaID:            q.DocID,
		OriginalAuthor:   q.AuthorName,
		OriginalQuestion: q.Question,
		ConvertedAt:      now,
		ConvertedBy:      actorID,
	}
	if chosen != nil {
		answer = chosen.Content
		prov.SelectedAnswerID = &chosen.DocID
		prov.SelectedAnswerAuthor = chosen.AuthorName
	}

	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}

	f := models.FAQ{
		DocID:         primitive.NewObjectID(),
		Category:      q.Category,
		Question:      q.Title,
		Answer:        answer,
		Tags:          tags,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     actorID,
		ConvertedFrom: prov,
	}

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return primitive.NilObjectID, err
	}
	return f.DocID, nil
}
