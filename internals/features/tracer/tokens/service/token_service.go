package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/codec"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
)

type Service struct {
	db  *gorm.DB
	cfg *configs.AppConfig
	now func() time.Time
}

func New(db *gorm.DB, cfg *configs.AppConfig) *Service {
	return &Service{
		db:  db,
		cfg: cfg,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock mengganti sumber waktu (dipakai test).
func (s *Service) WithClock(now func() time.Time) *Service {
	clone := *s
	clone.now = now
	return &clone
}

func (s *Service) Now() time.Time { return s.now() }

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Config() *configs.AppConfig { return s.cfg }

// Lookup adalah hasil pemeriksaan token yang lolos.
type Lookup struct {
	Hash   string
	Token  *tokenModel.SurveyToken
	Survey *surveyModel.Survey
}

// Inspect menjalankan pemeriksaan berurutan: ada, belum dipakai,
// belum kadaluarsa, survey masih dibuka. Bila lock true baris token dikunci
// (harus dipanggil di dalam transaksi).
func Inspect(db *gorm.DB, plaintext string, now time.Time, lock bool) (*Lookup, error) {
	plaintext = strings.ToLower(strings.TrimSpace(plaintext))
	if !codec.LooksLikeSecret(plaintext) {
		return nil, ErrTokenNotFound
	}
	hash := codec.Digest(plaintext)

	find := tokenRepo.FindByHash
	if lock {
		find = tokenRepo.FindByHashForUpdate
	}
	tok, err := find(db, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, Persistence("lookup token", err)
	}
	if tok.IsUsed {
		return nil, ErrTokenAlreadyUsed
	}
	if tok.ExpiredAt(now) {
		return nil, ErrTokenExpired
	}

	var survey surveyModel.Survey
	if err := db.Take(&survey, "id = ?", tok.SurveyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, Persistence("load survey", err)
	}
	if !survey.IsOpenAt(now) {
		return nil, ErrSurveyInactive
	}
	return &Lookup{Hash: hash, Token: tok, Survey: &survey}, nil
}

// Access adalah isi yang boleh dilihat alumni pemegang token.
// AlumniName dikirim di level atas respons, bukan di dalam survey.
type Access struct {
	SurveyID    uuid.UUID              `json:"id"`
	Title       string                 `json:"title"`
	Description *string                `json:"description,omitempty"`
	Deadline    *time.Time             `json:"deadline,omitempty"`
	Questions   []surveyModel.Question `json:"questions"`
	AlumniName  string                 `json:"-"`
	ExpiresAt   time.Time              `json:"expires_at"`
}

// Validate memeriksa token tanpa mengubah apa pun.
func (s *Service) Validate(ctx context.Context, plaintext string) (*Access, error) {
	db := s.db.WithContext(ctx)
	lk, err := Inspect(db, plaintext, s.Now(), false)
	if err != nil {
		return nil, err
	}

	var alumni alumniModel.Alumni
	if err := db.Select("id", "name").Take(&alumni, "id = ?", lk.Token.AlumniID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, Persistence("load alumni", err)
	}

	return &Access{
		SurveyID:    lk.Survey.ID,
		Title:       lk.Survey.Title,
		Description: lk.Survey.Description,
		Deadline:    lk.Survey.Deadline,
		Questions:   lk.Survey.QuestionList(),
		AlumniName:  alumni.Name,
		ExpiresAt:   lk.Token.ExpiresAt,
	}, nil
}

func (s *Service) expiryDays(requested int) (int, error) {
	if requested == 0 {
		requested = s.cfg.Token.ExpiryDays
	}
	if requested < configs.MinTokenExpiryDays || requested > configs.MaxTokenExpiryDays {
		return 0, ErrInvalidExpiry
	}
	return requested, nil
}

func findSurvey(db *gorm.DB, id uuid.UUID) (*surveyModel.Survey, error) {
	var survey surveyModel.Survey
	if err := db.Take(&survey, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, Persistence("load survey", err)
	}
	return &survey, nil
}

// Survey memuat survey berdasarkan id; ErrSurveyNotFound bila tidak ada.
func (s *Service) Survey(ctx context.Context, id uuid.UUID) (*surveyModel.Survey, error) {
	return findSurvey(s.db.WithContext(ctx), id)
}
