package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Alumni struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(150);not null" json:"name"`
	Email          string    `gorm:"column:email;type:varchar(150);not null;uniqueIndex" json:"email"`
	GraduationYear int       `gorm:"column:graduation_year;not null" json:"graduation_year"`
	Major          string    `gorm:"column:major;type:varchar(150);not null" json:"major"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Alumni) TableName() string {
	return "alumni"
}

func (a *Alumni) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
