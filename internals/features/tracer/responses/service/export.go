package service

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

const exportTimeLayout = "02/01/2006 15.04.05"

// utf-8 BOM supaya Excel membaca huruf non-ASCII dengan benar
const utf8BOM = "\ufeff"

// WriteCSV menulis satu baris per response: tanggal submit lalu jawaban
// per pertanyaan sesuai urutan survey.
func WriteCSV(w io.Writer, questions []surveyModel.Question, responses []responseModel.Response, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(questions)+1)
	header = append(header, "Tanggal Submit")
	for _, q := range questions {
		header = append(header, q.Text)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := range responses {
		r := &responses[i]
		answers := r.AnswerMap()
		row[0] = r.SubmittedAt.In(loc).Format(exportTimeLayout)
		for j, q := range questions {
			row[j+1] = strings.Join(answers[q.ID].Strings(), "; ")
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename: "{judul}_responses.csv" dengan judul yang aman untuk nama file.
func ExportFilename(title string) string {
	return helper.SafeFilename(title) + "_responses.csv"
}

type ExportService struct {
	stats *StatisticsService
	loc   *time.Location
}

func NewExportService(stats *StatisticsService, loc *time.Location) *ExportService {
	return &ExportService{stats: stats, loc: loc}
}

// Export menulis CSV seluruh response survey ke w dan mengembalikan nama file.
func (e *ExportService) Export(ctx context.Context, surveyID uuid.UUID, w io.Writer) (string, error) {
	db := e.stats.db.WithContext(ctx)
	survey, err := loadSurvey(db, surveyID)
	if err != nil {
		return "", err
	}
	var responses []responseModel.Response
	if err := db.Where("survey_id = ?", surveyID).
		Order("submitted_at ASC, id ASC").
		Find(&responses).Error; err != nil {
		return "", tokenService.Persistence("load responses", err)
	}
	if err := WriteCSV(w, survey.QuestionList(), responses, e.loc); err != nil {
		return "", err
	}
	return ExportFilename(survey.Title), nil
}
