package dto

import "github.com/google/uuid"

type GenerateRequest struct {
	AlumniIDs     []uuid.UUID `json:"alumni_ids"`
	ExpiryDays    int         `json:"expiry_days" validate:"omitempty,gte=1,lte=365"`
	ReuseExisting bool        `json:"reuse_existing"`
}

const (
	ActionExtend        = "extend"
	ActionResend        = "resend"
	ActionDeleteExpired = "delete-expired"
)

type BatchRequest struct {
	Action     string `json:"action" validate:"required,oneof=extend resend delete-expired"`
	ExtendDays int    `json:"extend_days" validate:"omitempty,gte=1,lte=365"`
}

type BatchResult struct {
	Action   string `json:"action"`
	Affected int64  `json:"affected"`
	Report   any    `json:"report,omitempty"`
}
