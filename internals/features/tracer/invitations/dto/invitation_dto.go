package dto

import "github.com/google/uuid"

type InviteRequest struct {
	AlumniIDs  []uuid.UUID `json:"alumni_ids"`
	ExpiryDays int         `json:"expiry_days" validate:"omitempty,gte=1,lte=365"`
}

type TestEmailRequest struct {
	To string `json:"to" validate:"required,email"`
}
