package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
)

type ListFilter struct {
	Search   string
	IsActive *bool
	Offset   int
	Limit    int
}

func List(db *gorm.DB, f ListFilter) ([]surveyModel.Survey, int64, error) {
	q := db.Model(&surveyModel.Survey{})
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []surveyModel.Survey
	err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	return rows, total, err
}

func FindByID(db *gorm.DB, id uuid.UUID) (*surveyModel.Survey, error) {
	var s surveyModel.Survey
	if err := db.Take(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ResponseCounts menghitung jumlah response per survey.
func ResponseCounts(db *gorm.DB, surveyIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(surveyIDs))
	if len(surveyIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		SurveyID uuid.UUID
		Total    int64
	}
	if err := db.Model(&responseModel.Response{}).
		Select("survey_id, COUNT(*) AS total").
		Where("survey_id IN ?", surveyIDs).
		Group("survey_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.SurveyID] = r.Total
	}
	return out, nil
}
