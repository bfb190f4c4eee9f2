package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/codec"
	authModel "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/model"
)

/* ====================== ADMIN ====================== */

func FindAdminByUsername(db *gorm.DB, username string) (*authModel.Admin, error) {
	var admin authModel.Admin
	if err := db.Where("username = ?", username).Take(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func FindAdminByID(db *gorm.DB, id uuid.UUID) (*authModel.Admin, error) {
	var admin authModel.Admin
	if err := db.Take(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func CreateAdmin(db *gorm.DB, admin *authModel.Admin) error {
	return db.Create(admin).Error
}

func UpdateAdminPassword(db *gorm.DB, id uuid.UUID, hashed string) error {
	return db.Model(&authModel.Admin{}).Where("id = ?", id).Update("password", hashed).Error
}

func UpdateAdminProfile(db *gorm.DB, id uuid.UUID, name, username string) error {
	return db.Model(&authModel.Admin{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "username": username}).Error
}

// IsUsernameTaken mengecek username milik admin lain.
func IsUsernameTaken(db *gorm.DB, username string, except uuid.UUID) (bool, error) {
	if username == "" {
		return false, errors.New("username cannot be empty")
	}
	var n int64
	err := db.Model(&authModel.Admin{}).
		Where("username = ? AND id <> ?", username, except).
		Count(&n).Error
	return n > 0, err
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken idempoten: logout dua kali dengan token sama tidak error.
func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_hash"}}, DoNothing: true}).
		Create(&authModel.RevokedToken{
			TokenHash: codec.Digest(token),
			ExpiredAt: expiredAt.UTC(),
		}).Error
}

func IsBlacklisted(db *gorm.DB, token string) (bool, error) {
	var n int64
	err := db.Model(&authModel.RevokedToken{}).Where("token_hash = ?", codec.Digest(token)).Count(&n).Error
	return n > 0, err
}

// CleanupExpiredBlacklist menghapus permanen entri yang kadaluarsa sebelum `before`.
func CleanupExpiredBlacklist(db *gorm.DB, before time.Time) (int64, error) {
	res := db.Unscoped().Where("expired_at < ?", before).Delete(&authModel.RevokedToken{})
	return res.RowsAffected, res.Error
}
