package model

import (
	"time"

	"gorm.io/gorm"
)

// RevokedToken mencatat JWT admin yang sudah logout. Yang disimpan hanya
// digest SHA-256 dari token, bukan token mentahnya.
type RevokedToken struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	TokenHash string         `gorm:"column:token_hash;type:char(64);not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time      `gorm:"column:expired_at;not null;index" json:"expired_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (RevokedToken) TableName() string {
	return "token_blacklist"
}

// Stale true bila JWT-nya sudah kadaluarsa lebih dari ttl; entri boleh dihapus.
func (r RevokedToken) Stale(now time.Time, ttl time.Duration) bool {
	return !r.ExpiredAt.Add(ttl).After(now)
}
