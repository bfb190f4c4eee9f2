package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
)

type AnswerView struct {
	QuestionID   string                    `json:"question_id"`
	QuestionText string                    `json:"question_text"`
	Answer       responseModel.AnswerValue `json:"answer"`
}

type ResponseView struct {
	ID          uuid.UUID    `json:"id"`
	AlumniName  string       `json:"alumni_name,omitempty"`
	AlumniEmail string       `json:"alumni_email,omitempty"`
	SubmittedAt time.Time    `json:"submitted_at"`
	Answers     []AnswerView `json:"answers"`
}

type responseRow struct {
	responseModel.Response
	AlumniName  string `gorm:"column:alumni_name"`
	AlumniEmail string `gorm:"column:alumni_email"`
}

// List mengembalikan response terbaru lebih dulu, lengkap dengan teks pertanyaan
// dan alumni pemilik token (dilacak lewat token_hash).
func (s *StatisticsService) List(ctx context.Context, surveyID uuid.UUID, offset, limit int) ([]ResponseView, int64, error) {
	db := s.db.WithContext(ctx)
	survey, err := loadSurvey(db, surveyID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.Model(&responseModel.Response{}).Where("survey_id = ?", surveyID).Count(&total).Error; err != nil {
		return nil, 0, tokenService.Persistence("count responses", err)
	}

	var rows []responseRow
	if err := db.Table("responses AS r").
		Select("r.*, a.name AS alumni_name, a.email AS alumni_email").
		Joins("LEFT JOIN survey_tokens AS t ON t.token_hash = r.token_hash").
		Joins("LEFT JOIN alumni AS a ON a.id = t.alumni_id").
		Where("r.survey_id = ?", surveyID).
		Order("r.submitted_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, tokenService.Persistence("list responses", err)
	}

	texts := make(map[string]string)
	for _, q := range survey.QuestionList() {
		texts[q.ID] = q.Text
	}

	out := make([]ResponseView, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		answers := r.Answers.Data()
		views := make([]AnswerView, 0, len(answers))
		for _, a := range answers {
			views = append(views, AnswerView{QuestionID: a.QuestionID, QuestionText: texts[a.QuestionID], Answer: a.Value})
		}
		out = append(out, ResponseView{
			ID:          r.ID,
			AlumniName:  r.AlumniName,
			AlumniEmail: r.AlumniEmail,
			SubmittedAt: r.SubmittedAt,
			Answers:     views,
		})
	}
	return out, total, nil
}

// DeleteBySurvey dipakai saat survey dihapus.
func DeleteBySurvey(db *gorm.DB, surveyID uuid.UUID) error {
	return db.Where("survey_id = ?", surveyID).Delete(&responseModel.Response{}).Error
}
