package qnastore

import (
	"context"
	"errors"
	"time"

	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateAnswer inserts a new active answer on an active question and
// bumps the question's answer counter. The counter update is a second,
// non-transactional write; listings recompute the count from live
// answers, so a failure here only skews the stored number until the next
// read.
func (s *Store) CreateAnswer(ctx context.Context, a models.Answer) (primitive.ObjectID, error) {
	err := s.questions.FindOne(ctx, bson.M{"_id": a.QuestionID, "is_active": true}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return primitive.NilObjectID, err
	}

	now := time.Now().UTC()
	a.DocID = primitive.NewObjectID()
	a.Likes = 0
	a.LikedBy = []string{}
	a.IsActive = true
	a.CreatedAt = now
	a.UpdatedAt = now
	a.DeletedAt = nil
	a.DeletedBy = ""

	if _, err := s.answers.InsertOne(ctx, a); err != nil {
		return primitive.NilObjectID, err
	}

	if _, err := s.questions.UpdateOne(ctx,
		bson.M{"_id": a.QuestionID},
		bson.M{"$inc": bson.M{"answer_count": 1}, "$set": bson.M{"updated_at": now}},
	); err != nil {
		s.logger.Warn("answer counter increment failed",
			zap.String("question_id", a.QuestionID.Hex()),
			zap.Error(err))
	}
	return a.DocID, nil
}

// DeleteAnswer soft-deletes an answer. Only the author or an admin may
// delete. The parent question's counter is decremented on success.
func (s *Store) DeleteAnswer(ctx context.Context, id primitive.ObjectID, actorID string, isAdmin bool) error {
	var a models.Answer
	err := s.answers.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if a.Author != actorID && !isAdmin {
		return ErrNotAllowed
	}

	now := time.Now().UTC()
	if _, err := s.answers.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"deleted_at": now,
			"deleted_by": actorID,
			"updated_at": now,
		}},
	); err != nil {
		return err
	}

	if _, err := s.questions.UpdateOne(ctx,
		bson.M{"_id": a.QuestionID},
		bson.M{"$inc": bson.M{"answer_count": -1}, "$set": bson.M{"updated_at": now}},
	); err != nil {
		s.logger.Warn("answer counter decrement failed",
			zap.String("question_id", a.QuestionID.Hex()),
			zap.Error(err))
	}
	return nil
}
