package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
)

func CreateAlumni(t *testing.T, db *gorm.DB, name string) alumniModel.Alumni {
	t.Helper()
	a := alumniModel.Alumni{
		Name:           name,
		Email:          fmt.Sprintf("%s@alumni.test", sanitize(name)),
		GraduationYear: 2020,
		Major:          "Teknik Informatika",
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create alumni: %v", err)
	}
	return a
}

func CreateSurvey(t *testing.T, db *gorm.DB, title string, questions ...surveyModel.Question) surveyModel.Survey {
	t.Helper()
	s := surveyModel.Survey{
		Title:     title,
		Questions: datatypes.NewJSONType(questions),
		IsActive:  true,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create survey: %v", err)
	}
	return s
}

func SetSurveyActive(t *testing.T, db *gorm.DB, s *surveyModel.Survey, active bool) {
	t.Helper()
	if err := db.Model(s).Update("is_active", active).Error; err != nil {
		t.Fatalf("update survey: %v", err)
	}
}

func SetSurveyDeadline(t *testing.T, db *gorm.DB, s *surveyModel.Survey, deadline time.Time) {
	t.Helper()
	if err := db.Model(s).Update("deadline", deadline).Error; err != nil {
		t.Fatalf("update survey: %v", err)
	}
}

func RatingQuestion(id string) surveyModel.Question {
	return surveyModel.Question{ID: id, Text: "Seberapa puas Anda?", Type: surveyModel.QuestionRating, Required: true}
}

func ChoiceQuestion(id string, options ...string) surveyModel.Question {
	return surveyModel.Question{ID: id, Text: "Status pekerjaan", Type: surveyModel.QuestionSingleChoice, Required: true, Options: options}
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '.')
		}
	}
	return string(out)
}
