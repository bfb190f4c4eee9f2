package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionShortText      QuestionType = "text"
	QuestionLongText       QuestionType = "textarea"
	QuestionSingleChoice   QuestionType = "multiple_choice"
	QuestionMultipleChoice QuestionType = "checkbox"
	QuestionRating         QuestionType = "rating"
)

const (
	RatingMin = 1
	RatingMax = 5
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionShortText, QuestionLongText, QuestionSingleChoice, QuestionMultipleChoice, QuestionRating:
		return true
	}
	return false
}

func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

func (t QuestionType) IsText() bool {
	return t == QuestionShortText || t == QuestionLongText
}

// Question disimpan embedded di kolom JSON surveys.questions.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty"`
}

type Survey struct {
	ID          uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string                         `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description *string                        `gorm:"column:description;type:text" json:"description,omitempty"`
	Questions   datatypes.JSONType[[]Question] `gorm:"column:questions;not null" json:"questions"`
	IsActive    bool                           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Deadline    *time.Time                     `gorm:"column:deadline" json:"deadline,omitempty"`
	CreatedAt   time.Time                      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Survey) TableName() string {
	return "surveys"
}

func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// QuestionList mengembalikan salinan pertanyaan dalam urutan asli.
func (s *Survey) QuestionList() []Question {
	return s.Questions.Data()
}

// IsOpenAt true selama survey aktif dan belum lewat deadline.
func (s *Survey) IsOpenAt(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.Deadline == nil || !now.After(*s.Deadline)
}
