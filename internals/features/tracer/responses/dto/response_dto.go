package dto

import (
	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
)

// SubmitRequest: {"answers":[{"question_id":"q1","answer":"..."}]}
type SubmitRequest struct {
	Answers []responseModel.Answer `json:"answers"`
}

type SurveyAccess struct {
	Valid      bool                 `json:"valid"`
	Survey     *tokenService.Access `json:"survey,omitempty"`
	AlumniName string               `json:"alumni_name,omitempty"`
}

type InvalidAccess struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type SubmitResult struct {
	Success bool                `json:"success"`
	Reason  string              `json:"reason,omitempty"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

const MsgThanks = "Terima kasih telah mengisi survey"
