package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyToken hanya menyimpan digest; secret plaintext tidak pernah ditulis ke DB.
type SurveyToken struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TokenHash string     `gorm:"column:token_hash;type:char(64);not null;uniqueIndex" json:"-"`
	SurveyID  uuid.UUID  `gorm:"column:survey_id;type:uuid;not null;index:idx_survey_tokens_pair" json:"survey_id"`
	AlumniID  uuid.UUID  `gorm:"column:alumni_id;type:uuid;not null;index:idx_survey_tokens_pair" json:"alumni_id"`
	IsUsed    bool       `gorm:"column:is_used;not null;default:false" json:"is_used"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SurveyToken) TableName() string {
	return "survey_tokens"
}

func (t *SurveyToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ExpiredAt: token yang kadaluarsa pada T sudah tidak berlaku pada T
// (now >= expires_at, bukan now > expires_at). Dengan begitu token yang
// dimatikan dengan expires_at = now langsung ditolak pada detik yang sama,
// dan batas ini sama dengan guard SQL "expires_at > now".
func (t *SurveyToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

type TokenStatus string

const (
	TokenStatusPending TokenStatus = "pending"
	TokenStatusUsed    TokenStatus = "used"
	TokenStatusExpired TokenStatus = "expired"
)

func (t *SurveyToken) StatusAt(now time.Time) TokenStatus {
	switch {
	case t.IsUsed:
		return TokenStatusUsed
	case t.ExpiredAt(now):
		return TokenStatusExpired
	default:
		return TokenStatusPending
	}
}
