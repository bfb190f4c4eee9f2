package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MapDBError memetakan error database ke status HTTP + pesan aman untuk client.
// Mendukung pgx (driver gorm) dan lib/pq.
func MapDBError(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.StatusNotFound, "Data tidak ditemukan"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.StatusConflict, "Data duplikat"
	}

	code := ""
	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		code = pgxErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	}

	switch code {
	case "23505":
		return fiber.StatusConflict, "Data duplikat (unique violation)."
	case "23503":
		return fiber.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
	case "23514":
		return fiber.StatusBadRequest, "Data melanggar constraint."
	default:
		return fiber.StatusInternalServerError, "Terjadi kesalahan database"
	}
}

// IsUniqueViolation true bila err adalah pelanggaran unique constraint.
func IsUniqueViolation(err error) bool {
	status, _ := MapDBError(err)
	return status == fiber.StatusConflict
}
