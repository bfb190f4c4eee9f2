package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	responseService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/service"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/dto"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	surveyRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/repository"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
)

var ErrNotFound = errors.New("survey not found")

// QuestionError mengumpulkan masalah pada daftar pertanyaan (key = questions.N.field).
type QuestionError struct {
	Fields map[string][]string
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("questions invalid: %d field", len(e.Fields))
}

func (e *QuestionError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// BuildQuestions memvalidasi input lalu mengubahnya ke model.
// ID kosong diisi uuid baru.
func BuildQuestions(in []dto.QuestionInput) ([]surveyModel.Question, error) {
	verr := &QuestionError{}
	if len(in) == 0 {
		verr.add("questions", "minimal satu pertanyaan")
		return nil, verr
	}

	seen := make(map[string]int, len(in))
	out := make([]surveyModel.Question, 0, len(in))
	for i, qi := range in {
		q := qi.ToModel()
		key := fmt.Sprintf("questions.%d", i)
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if prev, dup := seen[q.ID]; dup {
			verr.add(key+".id", fmt.Sprintf("id duplikat dengan pertanyaan ke-%d", prev+1))
		}
		seen[q.ID] = i

		if strings.TrimSpace(q.Text) == "" {
			verr.add(key+".text", "wajib diisi")
		}
		if !q.Type.Valid() {
			verr.add(key+".type", "tipe pertanyaan tidak dikenal")
		}
		if q.Type.IsChoice() {
			if len(q.Options) == 0 {
				verr.add(key+".options", "pilihan wajib diisi")
			}
			opts := make(map[string]struct{}, len(q.Options))
			for _, o := range q.Options {
				if o == "" {
					verr.add(key+".options", "pilihan tidak boleh kosong")
					continue
				}
				if _, dup := opts[o]; dup {
					verr.add(key+".options", "pilihan duplikat: "+o)
				}
				opts[o] = struct{}{}
			}
		}
		out = append(out, q)
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, f surveyRepo.ListFilter) ([]dto.SurveyResponse, int64, error) {
	db := s.db.WithContext(ctx)
	rows, total, err := surveyRepo.List(db, f)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	respCounts, err := surveyRepo.ResponseCounts(db, ids)
	if err != nil {
		return nil, 0, err
	}
	tokenCounts, err := tokenRepo.CountsBySurvey(db, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.SurveyResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToSurveyResponse(r, respCounts[r.ID], tokenCounts[r.ID]))
	}
	return out, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.SurveyResponse, error) {
	db := s.db.WithContext(ctx)
	m, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	return s.view(db, m)
}

func (s *Service) Create(ctx context.Context, req dto.SurveyRequest) (*dto.SurveyResponse, error) {
	req.Normalize()
	questions, err := BuildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	m := surveyModel.Survey{
		Title:       req.Title,
		Description: req.Description,
		Questions:   datatypes.NewJSONType(questions),
		IsActive:    true,
		Deadline:    req.Deadline,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	db := s.db.WithContext(ctx)
	// Select("*") supaya is_active=false tidak dilewati oleh default kolom
	if err := db.Select("*").Create(&m).Error; err != nil {
		return nil, err
	}
	log.Printf("[SURVEY] dibuat id=%s title=%q pertanyaan=%d", m.ID, m.Title, len(questions))
	res := dto.ToSurveyResponse(m, 0, 0)
	return &res, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.SurveyRequest) (*dto.SurveyResponse, error) {
	req.Normalize()
	questions, err := BuildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	m, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	m.Title = req.Title
	m.Description = req.Description
	m.Questions = datatypes.NewJSONType(questions)
	m.Deadline = req.Deadline
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := db.Save(m).Error; err != nil {
		return nil, err
	}
	return s.view(db, m)
}

// Toggle membalik status aktif survey.
func (s *Service) Toggle(ctx context.Context, id uuid.UUID) (*dto.SurveyResponse, error) {
	db := s.db.WithContext(ctx)
	m, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	m.IsActive = !m.IsActive
	if err := db.Model(m).Update("is_active", m.IsActive).Error; err != nil {
		return nil, err
	}
	log.Printf("[SURVEY] toggle id=%s aktif=%v", m.ID, m.IsActive)
	return s.view(db, m)
}

// Delete menghapus survey beserta token dan response-nya dalam satu transaksi.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.find(tx, id); err != nil {
			return err
		}
		if err := responseService.DeleteBySurvey(tx, id); err != nil {
			return err
		}
		if err := tokenRepo.DeleteBySurvey(tx, id); err != nil {
			return err
		}
		return tx.Delete(&surveyModel.Survey{}, "id = ?", id).Error
	})
}

func (s *Service) find(db *gorm.DB, id uuid.UUID) (*surveyModel.Survey, error) {
	m, err := surveyRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) view(db *gorm.DB, m *surveyModel.Survey) (*dto.SurveyResponse, error) {
	ids := []uuid.UUID{m.ID}
	resp, err := surveyRepo.ResponseCounts(db, ids)
	if err != nil {
		return nil, err
	}
	tok, err := tokenRepo.CountsBySurvey(db, ids)
	if err != nil {
		return nil, err
	}
	out := dto.ToSurveyResponse(*m, resp[m.ID], tok[m.ID])
	return &out, nil
}
