package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/codec"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
)

type GenerateOptions struct {
	// ExpiryDays 0 berarti pakai TOKEN_EXPIRY_DAYS.
	ExpiryDays int
	// ReuseExisting: alumni yang masih memegang token aktif tidak dibuatkan token baru.
	ReuseExisting bool
}

// IssuedToken membawa secret plaintext; hanya tersedia sekali, saat dibuat.
type IssuedToken struct {
	TokenID     uuid.UUID `json:"-"`
	SurveyID    uuid.UUID `json:"-"`
	AlumniID    uuid.UUID `json:"alumni_id"`
	AlumniName  string    `json:"alumni_name"`
	AlumniEmail string    `json:"alumni_email"`
	Token       string    `json:"token"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type ReusedToken struct {
	AlumniID    uuid.UUID `json:"alumni_id"`
	AlumniName  string    `json:"alumni_name"`
	AlumniEmail string    `json:"alumni_email"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SkippedAlumni sudah mengisi survey ini sehingga tidak diberi token lagi.
type SkippedAlumni struct {
	AlumniID    uuid.UUID `json:"alumni_id"`
	AlumniName  string    `json:"alumni_name"`
	AlumniEmail string    `json:"alumni_email"`
}

type GenerateResult struct {
	Issued  []IssuedToken   `json:"issued"`
	Reused  []ReusedToken   `json:"reused"`
	Skipped []SkippedAlumni `json:"skipped"`
	Retired int64           `json:"retired"`
}

// Generate membuat token untuk alumniIDs (kosong = semua alumni).
// Mode default mematikan dulu semua token aktif survey, lalu menerbitkan
// batch baru dalam satu transaksi.
func (s *Service) Generate(ctx context.Context, surveyID uuid.UUID, alumniIDs []uuid.UUID, opts GenerateOptions) (*GenerateResult, error) {
	days, err := s.expiryDays(opts.ExpiryDays)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	expiresAt := now.Add(time.Duration(days) * 24 * time.Hour)

	result := &GenerateResult{
		Issued:  []IssuedToken{},
		Reused:  []ReusedToken{},
		Skipped: []SkippedAlumni{},
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findSurvey(tx, surveyID); err != nil {
			return err
		}
		targets, err := loadTargets(tx, alumniIDs)
		if err != nil {
			return err
		}

		respondedIDs, err := tokenRepo.AlumniWhoResponded(tx, surveyID)
		if err != nil {
			return Persistence("load responders", err)
		}
		responded := toSet(respondedIDs)

		if !opts.ReuseExisting {
			n, err := tokenRepo.RetireValidForSurvey(tx, surveyID, now)
			if err != nil {
				return Persistence("retire tokens", err)
			}
			result.Retired = n
		}

		batch := make([]tokenModel.SurveyToken, 0, len(targets))
		for _, a := range targets {
			if _, ok := responded[a.ID]; ok {
				result.Skipped = append(result.Skipped, SkippedAlumni{AlumniID: a.ID, AlumniName: a.Name, AlumniEmail: a.Email})
				continue
			}
			if opts.ReuseExisting {
				existing, err := tokenRepo.FindValidForPair(tx, surveyID, a.ID, now)
				if err == nil {
					result.Reused = append(result.Reused, ReusedToken{
						AlumniID: a.ID, AlumniName: a.Name, AlumniEmail: a.Email, ExpiresAt: existing.ExpiresAt,
					})
					continue
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return Persistence("find valid token", err)
				}
			}

			secret, err := codec.GenerateSecret()
			if err != nil {
				return Persistence("generate secret", err)
			}
			batch = append(batch, tokenModel.SurveyToken{
				TokenHash: codec.Digest(secret),
				SurveyID:  surveyID,
				AlumniID:  a.ID,
				ExpiresAt: expiresAt,
			})
			result.Issued = append(result.Issued, IssuedToken{
				SurveyID:    surveyID,
				AlumniID:    a.ID,
				AlumniName:  a.Name,
				AlumniEmail: a.Email,
				Token:       secret,
				URL:         s.cfg.SurveyURL(secret),
				ExpiresAt:   expiresAt,
			})
		}

		if err := tokenRepo.CreateBatch(tx, batch); err != nil {
			return Persistence("insert tokens", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[TOKEN] survey=%s issued=%d reused=%d skipped=%d retired=%d",
		surveyID, len(result.Issued), len(result.Reused), len(result.Skipped), result.Retired)
	return result, nil
}

// IssueForAlumni menerbitkan secret baru untuk satu pasangan survey+alumni.
// Token lama pasangan itu belum disentuh: panggil ConfirmIssued setelah email
// terkirim, atau DiscardIssued bila gagal.
func (s *Service) IssueForAlumni(ctx context.Context, surveyID uuid.UUID, alumni alumniModel.Alumni, expiryDays int) (*IssuedToken, error) {
	days, err := s.expiryDays(expiryDays)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	secret, err := codec.GenerateSecret()
	if err != nil {
		return nil, Persistence("generate secret", err)
	}
	tok := tokenModel.SurveyToken{
		TokenHash: codec.Digest(secret),
		SurveyID:  surveyID,
		AlumniID:  alumni.ID,
		ExpiresAt: now.Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := tokenRepo.Create(s.db.WithContext(ctx), &tok); err != nil {
		return nil, Persistence("insert token", err)
	}

	return &IssuedToken{
		TokenID:     tok.ID,
		SurveyID:    surveyID,
		AlumniID:    alumni.ID,
		AlumniName:  alumni.Name,
		AlumniEmail: alumni.Email,
		Token:       secret,
		URL:         s.cfg.SurveyURL(secret),
		ExpiresAt:   tok.ExpiresAt,
	}, nil
}

// ConfirmIssued mematikan token aktif lain milik pasangan yang sama
// sehingga hanya secret yang baru terkirim yang berlaku.
func (s *Service) ConfirmIssued(ctx context.Context, issued *IssuedToken) (int64, error) {
	n, err := tokenRepo.RetireOthersForPair(s.db.WithContext(ctx), issued.SurveyID, issued.AlumniID, issued.TokenID, s.Now())
	if err != nil {
		return 0, Persistence("retire pair token", err)
	}
	return n, nil
}

// DiscardIssued menghapus token yang emailnya gagal terkirim. Token lama tetap berlaku.
func (s *Service) DiscardIssued(ctx context.Context, issued *IssuedToken) error {
	if _, err := tokenRepo.DeleteUnusedByID(s.db.WithContext(ctx), issued.TokenID); err != nil {
		return Persistence("discard token", err)
	}
	return nil
}

// loadTargets memuat alumni berdasarkan id (tanpa duplikat, urutan input dipertahankan).
func loadTargets(db *gorm.DB, ids []uuid.UUID) ([]alumniModel.Alumni, error) {
	var rows []alumniModel.Alumni
	if len(ids) == 0 {
		if err := db.Order("name ASC").Find(&rows).Error; err != nil {
			return nil, Persistence("load alumni", err)
		}
		return rows, nil
	}

	unique := dedupe(ids)
	if err := db.Where("id IN ?", unique).Find(&rows).Error; err != nil {
		return nil, Persistence("load alumni", err)
	}
	byID := make(map[uuid.UUID]alumniModel.Alumni, len(rows))
	for _, a := range rows {
		byID[a.ID] = a
	}

	out := make([]alumniModel.Alumni, 0, len(unique))
	var missing []string
	for _, id := range unique {
		a, ok := byID[id]
		if !ok {
			missing = append(missing, id.String())
			continue
		}
		out = append(out, a)
	}
	if len(missing) > 0 {
		return nil, &UnknownAlumniError{IDs: missing}
	}
	return out, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
