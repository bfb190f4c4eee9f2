package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type QuestionInput struct {
	ID       string   `json:"id" validate:"max=64"`
	Text     string   `json:"text" validate:"required,max=500"`
	Type     string   `json:"type" validate:"required,oneof=text textarea multiple_choice checkbox rating"`
	Required bool     `json:"required"`
	Options  []string `json:"options" validate:"omitempty,dive,required,max=200"`
}

// SurveyRequest dipakai untuk create maupun update (PUT mengganti seluruh isi).
type SurveyRequest struct {
	Title       string          `json:"title" validate:"required,min=3,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1,dive"`
	IsActive    *bool           `json:"is_active"`
	Deadline    *time.Time      `json:"deadline"`
}

func (r *SurveyRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
	for i := range r.Questions {
		q := &r.Questions[i]
		q.ID = strings.TrimSpace(q.ID)
		q.Text = strings.TrimSpace(q.Text)
		q.Type = strings.TrimSpace(q.Type)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
	}
}

func (q QuestionInput) ToModel() surveyModel.Question {
	out := surveyModel.Question{
		ID:       q.ID,
		Text:     q.Text,
		Type:     surveyModel.QuestionType(q.Type),
		Required: q.Required,
	}
	if out.Type.IsChoice() {
		out.Options = append([]string(nil), q.Options...)
	}
	return out
}

type ListSurveysQuery struct {
	Search   string `query:"q"`
	IsActive *bool  `query:"is_active"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type SurveyResponse struct {
	ID            uuid.UUID              `json:"id"`
	Title         string                 `json:"title"`
	Description   *string                `json:"description,omitempty"`
	Questions     []surveyModel.Question `json:"questions"`
	IsActive      bool                   `json:"is_active"`
	Deadline      *time.Time             `json:"deadline,omitempty"`
	ResponseCount int64                  `json:"response_count"`
	TokenCount    int64                  `json:"token_count"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func ToSurveyResponse(m surveyModel.Survey, responses, tokens int64) SurveyResponse {
	return SurveyResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Questions:     m.QuestionList(),
		IsActive:      m.IsActive,
		Deadline:      m.Deadline,
		ResponseCount: responses,
		TokenCount:    tokens,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
