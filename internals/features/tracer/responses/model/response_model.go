package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response dibuat sekali bersamaan dengan token ditandai terpakai, lalu tidak diubah lagi.
type Response struct {
	ID          uuid.UUID                    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SurveyID    uuid.UUID                    `gorm:"column:survey_id;type:uuid;not null;index:idx_responses_survey_submitted" json:"survey_id"`
	TokenHash   string                       `gorm:"column:token_hash;type:char(64);not null;index" json:"-"`
	Answers     datatypes.JSONType[[]Answer] `gorm:"column:answers;not null" json:"answers"`
	SubmittedAt time.Time                    `gorm:"column:submitted_at;not null;index:idx_responses_survey_submitted" json:"submitted_at"`
}

func (Response) TableName() string {
	return "responses"
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AnswerMap mengindeks jawaban per question id.
func (r *Response) AnswerMap() map[string]AnswerValue {
	list := r.Answers.Data()
	out := make(map[string]AnswerValue, len(list))
	for _, a := range list {
		out[a.QuestionID] = a.Value
	}
	return out
}
