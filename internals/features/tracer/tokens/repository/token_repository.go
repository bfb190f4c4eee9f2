package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
)

// ErrAlreadyConsumed dikembalikan MarkUsed bila token sudah terpakai
// (atau hilang) saat update dijalankan.
var ErrAlreadyConsumed = errors.New("token already consumed")

/* ====================== CREATE ====================== */

func Create(db *gorm.DB, t *tokenModel.SurveyToken) error {
	return db.Create(t).Error
}

func CreateBatch(db *gorm.DB, tokens []tokenModel.SurveyToken) error {
	if len(tokens) == 0 {
		return nil
	}
	return db.CreateInBatches(tokens, 200).Error
}

/* ====================== LOOKUP ====================== */

// FindByHash mengembalikan gorm.ErrRecordNotFound bila digest tidak dikenal.
func FindByHash(db *gorm.DB, hash string) (*tokenModel.SurveyToken, error) {
	var t tokenModel.SurveyToken
	if err := db.Where("token_hash = ?", hash).Take(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByHashForUpdate mengunci baris token sampai transaksi selesai.
// SQLite tidak punya row lock; di sana transaksi sudah berjalan serial.
func FindByHashForUpdate(tx *gorm.DB, hash string) (*tokenModel.SurveyToken, error) {
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return FindByHash(tx, hash)
}

// FindValidForPair mencari token aktif (belum dipakai, belum kadaluarsa) milik pasangan survey+alumni.
func FindValidForPair(db *gorm.DB, surveyID, alumniID uuid.UUID, now time.Time) (*tokenModel.SurveyToken, error) {
	var t tokenModel.SurveyToken
	err := db.
		Where("survey_id = ? AND alumni_id = ? AND is_used = ? AND expires_at > ?", surveyID, alumniID, false, now).
		Order("created_at DESC").
		Take(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AlumniWithValidToken: alumni survey ini yang masih memegang token aktif.
func AlumniWithValidToken(db *gorm.DB, surveyID uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&tokenModel.SurveyToken{}).
		Distinct("alumni_id").
		Where("survey_id = ? AND is_used = ? AND expires_at > ?", surveyID, false, now).
		Pluck("alumni_id", &ids).Error
	return ids, err
}

// AlumniWhoResponded: alumni yang tokennya untuk survey ini sudah terpakai.
func AlumniWhoResponded(db *gorm.DB, surveyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&tokenModel.SurveyToken{}).
		Distinct("alumni_id").
		Where("survey_id = ? AND is_used = ?", surveyID, true).
		Pluck("alumni_id", &ids).Error
	return ids, err
}

/* ====================== MUTATIONS ====================== */

// MarkUsed adalah satu-satunya transisi is_used false → true.
// Guard "is_used = false" membuat dua pemanggil bersamaan tidak bisa sama-sama sukses;
// token yang sudah kadaluarsa pada now juga ditolak.
func MarkUsed(db *gorm.DB, hash string, now time.Time) error {
	res := db.Model(&tokenModel.SurveyToken{}).
		Where("token_hash = ? AND is_used = ? AND expires_at > ?", hash, false, now).
		Updates(map[string]any{"is_used": true, "used_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrAlreadyConsumed
	}
	return nil
}

// RetireValidForSurvey membuat semua token aktif survey langsung kadaluarsa.
func RetireValidForSurvey(db *gorm.DB, surveyID uuid.UUID, now time.Time) (int64, error) {
	res := db.Model(&tokenModel.SurveyToken{}).
		Where("survey_id = ? AND is_used = ? AND expires_at > ?", surveyID, false, now).
		Update("expires_at", now)
	return res.RowsAffected, res.Error
}

// RetireOthersForPair mematikan token aktif pasangan survey+alumni selain keepID.
func RetireOthersForPair(db *gorm.DB, surveyID, alumniID, keepID uuid.UUID, now time.Time) (int64, error) {
	res := db.Model(&tokenModel.SurveyToken{}).
		Where("survey_id = ? AND alumni_id = ? AND id <> ? AND is_used = ? AND expires_at > ?", surveyID, alumniID, keepID, false, now).
		Update("expires_at", now)
	return res.RowsAffected, res.Error
}

// DeleteUnusedByID menghapus satu token yang belum dipakai.
func DeleteUnusedByID(db *gorm.DB, id uuid.UUID) (int64, error) {
	res := db.Where("id = ? AND is_used = ?", id, false).Delete(&tokenModel.SurveyToken{})
	return res.RowsAffected, res.Error
}

// ExtendValid memperpanjang token aktif sampai until.
func ExtendValid(db *gorm.DB, surveyID uuid.UUID, now, until time.Time) (int64, error) {
	res := db.Model(&tokenModel.SurveyToken{}).
		Where("survey_id = ? AND is_used = ? AND expires_at > ?", surveyID, false, now).
		Update("expires_at", until)
	return res.RowsAffected, res.Error
}

// DeleteExpiredUnused menghapus token kadaluarsa yang belum dipakai.
// Token terpakai tetap disimpan karena dihitung sebagai undangan terkirim.
func DeleteExpiredUnused(db *gorm.DB, surveyID uuid.UUID, now time.Time) (int64, error) {
	res := db.
		Where("survey_id = ? AND is_used = ? AND expires_at <= ?", surveyID, false, now).
		Delete(&tokenModel.SurveyToken{})
	return res.RowsAffected, res.Error
}

func DeleteBySurvey(db *gorm.DB, surveyID uuid.UUID) error {
	return db.Where("survey_id = ?", surveyID).Delete(&tokenModel.SurveyToken{}).Error
}

/* ====================== COUNTS & LISTING ====================== */

func CountForSurvey(db *gorm.DB, surveyID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&tokenModel.SurveyToken{}).Where("survey_id = ?", surveyID).Count(&n).Error
	return n, err
}

// CountsBySurvey menghitung jumlah token per survey untuk daftar survey.
func CountsBySurvey(db *gorm.DB, surveyIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(surveyIDs))
	if len(surveyIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		SurveyID uuid.UUID
		Total    int64
	}
	if err := db.Model(&tokenModel.SurveyToken{}).
		Select("survey_id, COUNT(*) AS total").
		Where("survey_id IN ?", surveyIDs).
		Group("survey_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.SurveyID] = r.Total
	}
	return out, nil
}

// TokenRow adalah token + data alumni untuk halaman admin.
type TokenRow struct {
	tokenModel.SurveyToken
	AlumniName  string `gorm:"column:alumni_name"`
	AlumniEmail string `gorm:"column:alumni_email"`
}

func ListForSurvey(db *gorm.DB, surveyID uuid.UUID, offset, limit int) ([]TokenRow, int64, error) {
	base := db.Table("survey_tokens AS t").
		Joins("JOIN alumni AS a ON a.id = t.alumni_id").
		Where("t.survey_id = ?", surveyID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TokenRow
	err := base.Session(&gorm.Session{}).
		Select("t.*, a.name AS alumni_name, a.email AS alumni_email").
		Order("t.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}
