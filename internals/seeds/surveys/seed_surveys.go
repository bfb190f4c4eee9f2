package surveys

import (
	_ "embed"
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
)

//go:embed data_survey.json
var dataSurvey []byte

type SurveySeed struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Questions   []surveyModel.Question `json:"questions"`
}

// SeedSampleSurvey membuat survey contoh bila belum ada survey dengan judul yang sama.
func SeedSampleSurvey(db *gorm.DB) error {
	var seed SurveySeed
	if err := json.Unmarshal(dataSurvey, &seed); err != nil {
		return err
	}

	var n int64
	if err := db.Model(&surveyModel.Survey{}).Where("title = ?", seed.Title).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Printf("ℹ️ Survey '%s' sudah ada, dilewati.", seed.Title)
		return nil
	}

	desc := seed.Description
	s := surveyModel.Survey{
		Title:       seed.Title,
		Description: &desc,
		Questions:   datatypes.NewJSONType(seed.Questions),
		IsActive:    true,
	}
	if err := db.Create(&s).Error; err != nil {
		return err
	}
	log.Printf("✅ Survey contoh '%s' dibuat (%d pertanyaan)", s.Title, len(seed.Questions))
	return nil
}
