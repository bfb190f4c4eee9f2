package dto

import (
	"time"

	"github.com/google/uuid"
)

type Totals struct {
	Alumni        int64 `json:"total_alumni"`
	Surveys       int64 `json:"total_surveys"`
	ActiveSurveys int64 `json:"active_surveys"`
	Tokens        int64 `json:"total_tokens"`
	UsedTokens    int64 `json:"used_tokens"`
	Responses     int64 `json:"total_responses"`
}

type RecentResponse struct {
	ID          uuid.UUID `json:"id"`
	SurveyID    uuid.UUID `json:"survey_id"`
	SurveyTitle string    `json:"survey_title"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Dashboard struct {
	Totals
	ResponseRate    float64          `json:"response_rate"`
	RecentResponses []RecentResponse `json:"recent_responses"`
}
