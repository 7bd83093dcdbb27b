// internal/domain/models/faq.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FAQ is a curated question/answer entry shown on the FAQ page.
//
// DisplayID is the human-facing ordering number, distinct from the Mongo
// document ID. Soft-deleted entries keep their document but have
// IsActive=false and are excluded from every read path.
type FAQ struct {
	DocID     primitive.ObjectID `bson:"_id,omitempty" json:"doc_id"`
	DisplayID int                `bson:"id" json:"id"`
	Category  string             `bson:"category" json:"category"` // connection | notification | features | troubleshoot | setup
	Question  string             `bson:"question" json:"question"`
	Answer    string             `bson:"answer" json:"answer"`
	Tags      []string           `bson:"tags" json:"tags"`
	IsActive  bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`

	// ConvertedFrom is set only on FAQs derived from a Q&A thread.
	ConvertedFrom *ConvertedFrom `bson:"converted_from,omitempty" json:"converted_from,omitempty"`
}

// ConvertedFrom records the provenance of an FAQ created from a Q&A
// question (and optionally one of its answers). The source thread is
// never mutated by the conversion.
type ConvertedFrom struct {
	QnaID                primitive.ObjectID  `bson:"qna_id" json:"qna_id"`
	OriginalAuthor       string              `bson:"original_author" json:"original_author"`
	OriginalQuestion     string              `bson:"original_question" json:"original_question"`
	SelectedAnswerID     *primitive.ObjectID `bson:"selected_answer_id,omitempty" json:"selected_answer_id,omitempty"`
	SelectedAnswerAuthor string              `bson:"selected_answer_author,omitempty" json:"selected_answer_author,omitempty"`
	ConvertedAt          time.Time           `bson:"converted_at" json:"converted_at"`
	ConvertedBy          string              `bson:"converted_by" json:"converted_by"`
}
