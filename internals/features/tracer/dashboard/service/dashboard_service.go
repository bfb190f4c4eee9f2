package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/dashboard/dto"
	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
)

const RecentLimit = 5

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Summary memuat semua hitungan secara paralel; satu query gagal
// membatalkan yang lain lewat ctx errgroup.
func (s *Service) Summary(ctx context.Context) (*dto.Dashboard, error) {
	g, gctx := errgroup.WithContext(ctx)
	db := s.db.WithContext(gctx)

	var out dto.Dashboard
	count := func(dst *int64, model any, where ...any) {
		g.Go(func() error {
			q := db.Model(model)
			if len(where) > 0 {
				q = q.Where(where[0], where[1:]...)
			}
			return q.Count(dst).Error
		})
	}
	count(&out.Alumni, &alumniModel.Alumni{})
	count(&out.Surveys, &surveyModel.Survey{})
	count(&out.ActiveSurveys, &surveyModel.Survey{}, "is_active = ?", true)
	count(&out.Tokens, &tokenModel.SurveyToken{})
	count(&out.UsedTokens, &tokenModel.SurveyToken{}, "is_used = ?", true)
	count(&out.Responses, &responseModel.Response{})

	g.Go(func() error {
		var rows []dto.RecentResponse
		err := db.Table("responses AS r").
			Select("r.id, r.survey_id, s.title AS survey_title, r.submitted_at").
			Joins("JOIN surveys AS s ON s.id = r.survey_id").
			Order("r.submitted_at DESC").
			Limit(RecentLimit).
			Scan(&rows).Error
		out.RecentResponses = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.RecentResponses == nil {
		out.RecentResponses = []dto.RecentResponse{}
	}
	if out.Tokens > 0 {
		out.ResponseRate = math.Round(float64(out.Responses)/float64(out.Tokens)*10000) / 100
	}
	return &out, nil
}
