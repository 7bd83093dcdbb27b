package qnastore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/wearlab/watchclub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Store mediates access to Q&A threads. Questions and answers live in
// separate collections; answers reference their question by id.
type Store struct {
	questions *mongo.Collection
	answers   *mongo.Collection
	logger    *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		questions: db.Collection("qna"),
		answers:   db.Collection("qna_answers"),
		logger:    logger,
	}
}

var (
	// ErrNotFound is returned when the referenced question or answer does
	// not exist or has been soft-deleted.
	ErrNotFound = errors.New("qna: not found")

	// ErrNotAllowed is returned when the acting user is neither the
	// author of the document nor an admin.
	ErrNotAllowed = errors.New("qna: not allowed")
)

// DefaultListLimit caps a question listing when the caller passes no
// explicit limit.
const DefaultListLimit = 50

// ListQuestions returns up to limit active questions, newest first, each
// with its active answers attached. An empty category means all
// categories. If fetching answers for a question fails, that question is
// returned with an empty answer list rather than failing the whole
// listing.
func (s *Store) ListQuestions(ctx context.Context, category string, limit int) ([]models.Question, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	filter := bson.M{"is_active": true}
	if category != "" {
		filter["category"] = category
	}

	cur, err := s.questions.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	if len(questions) > limit {
		questions = questions[:limit]
	}

	for i := range questions {
		answers, err := s.activeAnswers(ctx, questions[i].DocID)
		if err != nil {
			s.logger.Warn("fetching answers for question failed",
				zap.String("question_id", questions[i].DocID.Hex()),
				zap.Error(err))
			answers = []models.Answer{}
		}
		questions[i].Answers = answers
		questions[i].AnswerCount = len(answers)
	}
	return questions, nil
}

// GetQuestion returns a single active question with its active answers,
// oldest answer first.
func (s *Store) GetQuestion(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var q models.Question
	err := s.questions.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	answers, err := s.activeAnswers(ctx, q.DocID)
	if err != nil {
		return nil, err
	}
	q.Answers = answers
	q.AnswerCount = len(answers)
	return &q, nil
}

func (s *Store) activeAnswers(ctx context.Context, questionID primitive.ObjectID) ([]models.Answer, error) {
	cur, err := s.answers.Find(ctx, bson.M{"question_id": questionID, "is_active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	answers := []models.Answer{}
	if err := cur.All(ctx, &answers); err != nil {
		return nil, err
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.Before(answers[j].CreatedAt)
	})
	return answers, nil
}

// CreateQuestion inserts a new active thread and returns its id. The
// author fields on q must already be filled in by the caller.
func (s *Store) CreateQuestion(ctx context.Context, q models.Question) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	q.DocID = primitive.NewObjectID()
	q.Likes = 0
	q.LikedBy = []string{}
	q.AnswerCount = 0
	q.IsActive = true
	q.CreatedAt = now
	q.UpdatedAt = now
	q.DeletedAt = nil
	q.DeletedBy = ""
	q.Answers = nil

	if _, err := s.questions.InsertOne(ctx, q); err != nil {
		return primitive.NilObjectID, err
	}
	return q.DocID, nil
}

// DeleteQuestion soft-deletes a thread. Only the author or an admin may
// delete; anyone else gets ErrNotAllowed and the document is untouched.
// Answers stay active in their own collection but become unreachable
// because every answer read goes through the parent question.
func (s *Store) DeleteQuestion(ctx context.Context, id primitive.ObjectID, actorID string, isAdmin bool) error {
	var q models.Question
	err := s.questions.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if q.Author != actorID && !isAdmin {
		return ErrNotAllowed
	}

	now := time.Now().UTC()
	_, err = s.questions.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"deleted_at": now,
			"deleted_by": actorID,
			"updated_at": now,
		}},
	)
	return err
}
