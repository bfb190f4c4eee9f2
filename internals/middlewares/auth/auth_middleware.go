package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	authService "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

const (
	LocAdminID       = "admin_id"
	LocAdminUsername = "admin_username"
	LocAdminName     = "admin_name"
)

// AdminAuth menerima token dari header Bearer atau cookie admin-token.
func AdminAuth(svc *authService.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		claims, err := svc.Authenticate(c.UserContext(), raw)
		if err != nil {
			if errors.Is(err, authService.ErrInvalidToken) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token tidak valid atau sudah logout")
			}
			log.Println("[ERROR] DB error saat cek blacklist:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		helper.SetRawAccessToken(c, raw)
		c.Locals(LocAdminID, claims.ID)
		c.Locals(LocAdminUsername, claims.Username)
		c.Locals(LocAdminName, claims.Name)
		return c.Next()
	}
}

// AdminID membaca id admin yang sudah diset AdminAuth.
func AdminID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals(LocAdminID).(string)
	id, err := uuid.Parse(s)
	return id, err == nil
}
