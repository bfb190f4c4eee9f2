package service

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenAlreadyUsed = errors.New("token already used")
	ErrTokenExpired     = errors.New("token expired")
	ErrSurveyInactive   = errors.New("survey inactive")
	ErrPersistence      = errors.New("persistence failure")
	ErrDelivery         = errors.New("delivery failure")

	ErrSurveyNotFound = errors.New("survey not found")
	ErrInvalidExpiry  = errors.New("invalid expiry days")
)

// UnknownAlumniError menyebut alumni_id yang tidak ada di tabel alumni.
type UnknownAlumniError struct {
	IDs []string
}

func (e *UnknownAlumniError) Error() string {
	return fmt.Sprintf("unknown alumni: %v", e.IDs)
}

// ValidationError berisi pesan per pertanyaan (key = question id).
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("answers invalid: %v", keys)
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Persistence membungkus error infrastruktur: dicatat di log, lalu hanya
// ErrPersistence yang terlihat oleh pemanggil lewat Reason.
func Persistence(op string, err error) error {
	log.Printf("[TOKEN] %s gagal: %v", op, err)
	return fmt.Errorf("%s: %w", op, errors.Join(ErrPersistence, err))
}

// Reason adalah bentuk stabil sebuah error untuk client.
type Reason struct {
	Code    string              `json:"reason"`
	Message string              `json:"message"`
	Status  int                 `json:"-"`
	Fields  map[string][]string `json:"errors,omitempty"`
}

const (
	MsgTokenNotFound    = "Token tidak valid"
	MsgTokenAlreadyUsed = "Token telah digunakan"
	MsgTokenExpired     = "Token telah kadaluarsa"
	MsgSurveyInactive   = "Survey tidak aktif"
	MsgValidation       = "Jawaban tidak valid"
	MsgPersistence      = "Gagal menyimpan jawaban survey"
	MsgDelivery         = "Gagal mengirim email"
	MsgInternal         = "Terjadi kesalahan saat validasi token"
)

// ReasonFor menerjemahkan error apa pun ke Reason; error tak dikenal
// dianggap kegagalan internal tanpa membocorkan isinya.
func ReasonFor(err error) Reason {
	var verr *ValidationError
	switch {
	case errors.Is(err, ErrTokenNotFound):
		return Reason{Code: "TOKEN_NOT_FOUND", Message: MsgTokenNotFound, Status: fiber.StatusNotFound}
	case errors.Is(err, ErrTokenAlreadyUsed):
		return Reason{Code: "TOKEN_ALREADY_USED", Message: MsgTokenAlreadyUsed, Status: fiber.StatusConflict}
	case errors.Is(err, ErrTokenExpired):
		return Reason{Code: "TOKEN_EXPIRED", Message: MsgTokenExpired, Status: fiber.StatusGone}
	case errors.Is(err, ErrSurveyInactive):
		return Reason{Code: "SURVEY_INACTIVE", Message: MsgSurveyInactive, Status: fiber.StatusForbidden}
	case errors.As(err, &verr):
		return Reason{Code: "VALIDATION_FAILED", Message: MsgValidation, Status: fiber.StatusUnprocessableEntity, Fields: verr.Fields}
	case errors.Is(err, ErrPersistence):
		return Reason{Code: "PERSISTENCE_FAILURE", Message: MsgPersistence, Status: fiber.StatusInternalServerError}
	case errors.Is(err, ErrDelivery):
		return Reason{Code: "DELIVERY_FAILURE", Message: MsgDelivery, Status: fiber.StatusBadGateway}
	default:
		return Reason{Code: "INTERNAL_ERROR", Message: MsgInternal, Status: fiber.StatusInternalServerError}
	}
}
