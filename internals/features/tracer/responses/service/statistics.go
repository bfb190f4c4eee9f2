package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

// MaxTextSamples: jumlah jawaban teks pertama yang ikut ditampilkan.
const MaxTextSamples = 10

type OptionStat struct {
	Option     string  `json:"option"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type QuestionStat struct {
	QuestionID    string                   `json:"question_id"`
	Text          string                   `json:"text"`
	Type          surveyModel.QuestionType `json:"type"`
	ResponseCount int                      `json:"response_count"`
	Options       []OptionStat             `json:"options,omitempty"`
	Average       *float64                 `json:"average,omitempty"`
	Distribution  map[int]int              `json:"distribution,omitempty"`
	Answers       []string                 `json:"answers,omitempty"`
}

type Statistics struct {
	SurveyID       uuid.UUID      `json:"survey_id"`
	Title          string         `json:"title"`
	TotalResponses int            `json:"total_responses"`
	TotalSent      int64          `json:"total_sent"`
	ResponseRate   float64        `json:"response_rate"`
	Questions      []QuestionStat `json:"questions"`
}

// Aggregate menghitung ringkasan per pertanyaan dalam satu lintasan.
// Fungsi murni: tidak menyentuh database.
func Aggregate(questions []surveyModel.Question, responses []responseModel.Response, totalSent int64) Statistics {
	acc := make([]*questionAcc, len(questions))
	for i, q := range questions {
		acc[i] = newQuestionAcc(q)
	}

	for i := range responses {
		answers := responses[i].AnswerMap()
		for _, a := range acc {
			v, ok := answers[a.q.ID]
			if !ok || v.IsBlank() {
				continue
			}
			a.add(v)
		}
	}

	stats := Statistics{
		TotalResponses: len(responses),
		TotalSent:      totalSent,
		ResponseRate:   percent(len(responses), totalSent),
		Questions:      make([]QuestionStat, 0, len(acc)),
	}
	for _, a := range acc {
		stats.Questions = append(stats.Questions, a.result())
	}
	return stats
}

type questionAcc struct {
	q         surveyModel.Question
	responses int

	optionIdx map[string]int
	counts    []int

	ratingSum   float64
	ratingCount int
	dist        map[int]int

	texts []string
}

func newQuestionAcc(q surveyModel.Question) *questionAcc {
	a := &questionAcc{q: q}
	switch {
	case q.Type.IsChoice():
		a.optionIdx = make(map[string]int, len(q.Options))
		a.counts = make([]int, len(q.Options))
		for i, o := range q.Options {
			a.optionIdx[helper.NormalizeText(o)] = i
		}
	case q.Type == surveyModel.QuestionRating:
		a.dist = make(map[int]int, surveyModel.RatingMax)
		for r := surveyModel.RatingMin; r <= surveyModel.RatingMax; r++ {
			a.dist[r] = 0
		}
	case q.Type.IsText():
		a.texts = make([]string, 0, MaxTextSamples)
	}
	return a
}

func (a *questionAcc) add(v responseModel.AnswerValue) {
	a.responses++

	switch a.q.Type {
	case surveyModel.QuestionSingleChoice, surveyModel.QuestionMultipleChoice:
		var picks []string
		switch v.Kind {
		case responseModel.AnswerText:
			picks = []string{v.Text}
		case responseModel.AnswerChoices:
			picks = v.Choices
		}
		for _, p := range picks {
			if i, ok := a.optionIdx[helper.NormalizeText(p)]; ok {
				a.counts[i]++
			}
		}

	case surveyModel.QuestionRating:
		if v.Kind != responseModel.AnswerNumber {
			return
		}
		a.ratingSum += v.Number
		a.ratingCount++
		r := int(math.Round(v.Number))
		if _, ok := a.dist[r]; ok {
			a.dist[r]++
		}

	case surveyModel.QuestionShortText, surveyModel.QuestionLongText:
		if len(a.texts) >= MaxTextSamples {
			return
		}
		if v.Kind == responseModel.AnswerText {
			a.texts = append(a.texts, v.Text)
		} else {
			a.texts = append(a.texts, strings.Join(v.Strings(), ", "))
		}
	}
}

func (a *questionAcc) result() QuestionStat {
	out := QuestionStat{
		QuestionID:    a.q.ID,
		Text:          a.q.Text,
		Type:          a.q.Type,
		ResponseCount: a.responses,
	}
	switch {
	case a.q.Type.IsChoice():
		out.Options = make([]OptionStat, len(a.q.Options))
		for i, o := range a.q.Options {
			out.Options[i] = OptionStat{
				Option:     o,
				Count:      a.counts[i],
				Percentage: percent(a.counts[i], int64(a.responses)),
			}
		}
	case a.q.Type == surveyModel.QuestionRating:
		avg := 0.0
		if a.ratingCount > 0 {
			avg = round2(a.ratingSum / float64(a.ratingCount))
		}
		out.Average = &avg
		out.Distribution = a.dist
	case a.q.Type.IsText():
		out.Answers = a.texts
	}
	return out
}

func percent(part int, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

/* ====================== SERVICE ====================== */

type StatisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// Compute memuat survey, seluruh jawaban, dan jumlah token lalu memanggil Aggregate.
func (s *StatisticsService) Compute(ctx context.Context, surveyID uuid.UUID) (*Statistics, error) {
	db := s.db.WithContext(ctx)

	survey, err := loadSurvey(db, surveyID)
	if err != nil {
		return nil, err
	}

	var responses []responseModel.Response
	if err := db.Where("survey_id = ?", surveyID).
		Order("submitted_at ASC, id ASC").
		Find(&responses).Error; err != nil {
		return nil, tokenService.Persistence("load responses", err)
	}

	sent, err := tokenRepo.CountForSurvey(db, surveyID)
	if err != nil {
		return nil, tokenService.Persistence("count tokens", err)
	}

	stats := Aggregate(survey.QuestionList(), responses, sent)
	stats.SurveyID = survey.ID
	stats.Title = survey.Title
	return &stats, nil
}

func loadSurvey(db *gorm.DB, id uuid.UUID) (*surveyModel.Survey, error) {
	var survey surveyModel.Survey
	if err := db.Take(&survey, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tokenService.ErrSurveyNotFound
		}
		return nil, tokenService.Persistence("load survey", err)
	}
	return &survey, nil
}
