package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/dto"
	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	alumniRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/repository"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

var (
	ErrNotFound   = errors.New("alumni not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Service struct {
	db       *gorm.DB
	validate *validator.Validate
	now      func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		validate: helper.NewValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context, search string, offset, limit int) ([]dto.AlumniResponse, int64, error) {
	rows, total, err := alumniRepo.List(s.db.WithContext(ctx), search, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToAlumniResponses(rows), total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.AlumniResponse, error) {
	a, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	res := dto.ToAlumniResponse(*a)
	return &res, nil
}

func (s *Service) Create(ctx context.Context, req dto.AlumniRequest) (*dto.AlumniResponse, error) {
	req.Normalize()
	db := s.db.WithContext(ctx)
	taken, err := alumniRepo.EmailTaken(db, req.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	m := req.ToModel()
	if err := alumniRepo.Create(db, &m); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	res := dto.ToAlumniResponse(m)
	return &res, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.AlumniRequest) (*dto.AlumniResponse, error) {
	req.Normalize()
	db := s.db.WithContext(ctx)
	m, err := s.find(db, id)
	if err != nil {
		return nil, err
	}
	taken, err := alumniRepo.EmailTaken(db, req.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	m.Name = req.Name
	m.Email = req.Email
	m.GraduationYear = req.GraduationYear
	m.Major = req.Major
	if err := alumniRepo.Save(db, m); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	res := dto.ToAlumniResponse(*m)
	return &res, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := alumniRepo.Delete(s.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Import memvalidasi lalu meng-upsert tiap baris secara terpisah;
// baris yang gagal tidak menggagalkan baris lain. pre berisi error baris
// yang sudah gagal saat parsing.
func (s *Service) Import(ctx context.Context, rows []ImportRow, pre []dto.ImportError) *dto.ImportReport {
	report := &dto.ImportReport{Errors: []dto.ImportError{}}
	for _, e := range pre {
		addFailure(report, e.Row, e.Email, e.Error)
	}

	db := s.db.WithContext(ctx)
	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		row := r.Data
		row.Normalize()

		if err := s.validate.Struct(&row); err != nil {
			addFailure(report, r.Line, row.Email, summarize(helper.ValidationErrors(err)))
			continue
		}
		if prev, dup := seen[row.Email]; dup {
			log.Printf("[ALUMNI] import: email %s muncul lagi di baris %d (sebelumnya %d)", helper.MaskSecret(row.Email), r.Line, prev)
		}
		seen[row.Email] = r.Line

		m := row.ToModel()
		if err := alumniRepo.UpsertByEmail(db, &m, s.now()); err != nil {
			log.Printf("[ALUMNI] import baris %d gagal: %v", r.Line, err)
			_, msg := helper.MapDBError(err)
			addFailure(report, r.Line, row.Email, msg)
			continue
		}
		report.Success++
	}

	sort.SliceStable(report.Errors, func(i, j int) bool { return report.Errors[i].Row < report.Errors[j].Row })
	log.Printf("[ALUMNI] import selesai: sukses=%d gagal=%d", report.Success, report.Failed)
	return report
}

func addFailure(r *dto.ImportReport, row int, email, msg string) {
	r.Failed++
	r.Errors = append(r.Errors, dto.ImportError{Row: row, Email: email, Error: msg})
}

func (s *Service) find(db *gorm.DB, id uuid.UUID) (*alumniModel.Alumni, error) {
	a, err := alumniRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
