package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
)

// List mencari berdasarkan nama, email, atau jurusan (case-insensitive).
func List(db *gorm.DB, search string, offset, limit int) ([]alumniModel.Alumni, int64, error) {
	q := db.Model(&alumniModel.Alumni{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(major) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []alumniModel.Alumni
	err := q.Session(&gorm.Session{}).
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func FindByID(db *gorm.DB, id uuid.UUID) (*alumniModel.Alumni, error) {
	var a alumniModel.Alumni
	if err := db.Take(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func EmailTaken(db *gorm.DB, email string, except uuid.UUID) (bool, error) {
	var n int64
	q := db.Model(&alumniModel.Alumni{}).Where("email = ?", email)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func Create(db *gorm.DB, a *alumniModel.Alumni) error {
	return db.Create(a).Error
}

func Save(db *gorm.DB, a *alumniModel.Alumni) error {
	return db.Save(a).Error
}

// UpsertByEmail: email yang sudah ada diperbarui nama, angkatan, dan jurusannya.
func UpsertByEmail(db *gorm.DB, a *alumniModel.Alumni, now time.Time) error {
	a.UpdatedAt = now
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "graduation_year", "major", "updated_at"}),
	}).Create(a).Error
}

// Delete ikut menghapus token milik alumni tersebut.
func Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("alumni_id = ?", id).Delete(&tokenModel.SurveyToken{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&alumniModel.Alumni{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func Count(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&alumniModel.Alumni{}).Count(&n).Error
	return n, err
}
