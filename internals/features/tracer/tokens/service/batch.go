package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
	tokenRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/repository"
)

// Extend memperpanjang semua token aktif survey sampai now + days.
func (s *Service) Extend(ctx context.Context, surveyID uuid.UUID, days int) (int64, error) {
	days, err := s.expiryDays(days)
	if err != nil {
		return 0, err
	}
	db := s.db.WithContext(ctx)
	if _, err := findSurvey(db, surveyID); err != nil {
		return 0, err
	}
	now := s.Now()
	n, err := tokenRepo.ExtendValid(db, surveyID, now, now.Add(time.Duration(days)*24*time.Hour))
	if err != nil {
		return 0, Persistence("extend tokens", err)
	}
	return n, nil
}

// DeleteExpired membersihkan token kadaluarsa yang belum terpakai.
func (s *Service) DeleteExpired(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	db := s.db.WithContext(ctx)
	if _, err := findSurvey(db, surveyID); err != nil {
		return 0, err
	}
	n, err := tokenRepo.DeleteExpiredUnused(db, surveyID, s.Now())
	if err != nil {
		return 0, Persistence("delete expired tokens", err)
	}
	return n, nil
}

// TokenView adalah baris token untuk halaman admin, tanpa digest.
type TokenView struct {
	ID          uuid.UUID              `json:"id"`
	AlumniID    uuid.UUID              `json:"alumni_id"`
	AlumniName  string                 `json:"alumni_name"`
	AlumniEmail string                 `json:"alumni_email"`
	Status      tokenModel.TokenStatus `json:"status"`
	ExpiresAt   time.Time              `json:"expires_at"`
	UsedAt      *time.Time             `json:"used_at,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func (s *Service) List(ctx context.Context, surveyID uuid.UUID, offset, limit int) ([]TokenView, int64, error) {
	rows, total, err := tokenRepo.ListForSurvey(s.db.WithContext(ctx), surveyID, offset, limit)
	if err != nil {
		return nil, 0, Persistence("list tokens", err)
	}
	now := s.Now()
	out := make([]TokenView, 0, len(rows))
	for i := range rows {
		r := rows[i]
		out = append(out, TokenView{
			ID:          r.ID,
			AlumniID:    r.AlumniID,
			AlumniName:  r.AlumniName,
			AlumniEmail: r.AlumniEmail,
			Status:      r.StatusAt(now),
			ExpiresAt:   r.ExpiresAt,
			UsedAt:      r.UsedAt,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, total, nil
}

// PendingAlumni: alumni survey ini yang masih memegang token aktif (target kirim ulang).
func (s *Service) PendingAlumni(ctx context.Context, surveyID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := tokenRepo.AlumniWithValidToken(s.db.WithContext(ctx), surveyID, s.Now())
	if err != nil {
		return nil, Persistence("load pending alumni", err)
	}
	return ids, nil
}

// Recipients adalah target undangan satu survey.
type Recipients struct {
	Survey  *surveyModel.Survey
	Targets []alumniModel.Alumni
	// Skipped sudah mengisi survey, tidak perlu diundang lagi.
	Skipped []alumniModel.Alumni
}

// LoadRecipients memuat survey dan alumni tujuan (kosong = semua alumni).
func (s *Service) LoadRecipients(ctx context.Context, surveyID uuid.UUID, alumniIDs []uuid.UUID) (*Recipients, error) {
	db := s.db.WithContext(ctx)
	survey, err := findSurvey(db, surveyID)
	if err != nil {
		return nil, err
	}
	all, err := loadTargets(db, alumniIDs)
	if err != nil {
		return nil, err
	}
	respondedIDs, err := tokenRepo.AlumniWhoResponded(db, surveyID)
	if err != nil {
		return nil, Persistence("load responders", err)
	}
	responded := toSet(respondedIDs)

	out := &Recipients{Survey: survey}
	for _, a := range all {
		if _, ok := responded[a.ID]; ok {
			out.Skipped = append(out.Skipped, a)
			continue
		}
		out.Targets = append(out.Targets, a)
	}
	return out, nil
}
