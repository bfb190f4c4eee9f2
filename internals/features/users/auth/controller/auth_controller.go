package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/dto"
	"github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
	authMiddleware "github.com/firmantawakal/simak-tracer-study/internals/middlewares/auth"
)

type AuthController struct {
	Svc      *service.Service
	Validate *validator.Validate
}

func NewAuthController(svc *service.Service) *AuthController {
	return &AuthController{Svc: svc, Validate: helper.NewValidator()}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ac.Svc.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username atau password salah")
		}
		log.Printf("[AUTH] login gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	ac.setSessionCookie(c, res.Token, res.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", res)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if err := ac.Svc.Logout(c.UserContext(), raw); err != nil {
		log.Printf("[WARN] Failed to blacklist token: %v", err)
	}
	ac.setSessionCookie(c, "", time.Now().Add(-time.Hour))
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/a/profile
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	id, ok := authMiddleware.AdminID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	admin, err := ac.Svc.Profile(c.UserContext(), id)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonOK(c, "OK", admin)
}

// PUT /api/a/profile
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	id, ok := authMiddleware.AdminID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	admin, err := ac.Svc.UpdateProfile(c.UserContext(), id, req.Name, req.Username)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonUpdated(c, "Profil diperbarui", admin)
}

// PUT /api/a/password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	id, ok := authMiddleware.AdminID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diubah", nil)
}

func (ac *AuthController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAdminNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Admin tidak ditemukan")
	case errors.Is(err, service.ErrUsernameTaken):
		return helper.JsonError(c, fiber.StatusConflict, "Username sudah digunakan")
	case errors.Is(err, service.ErrWrongPassword):
		return helper.JsonError(c, fiber.StatusBadRequest, "Password saat ini salah")
	}
	status, msg := helper.MapDBError(err)
	log.Printf("[AUTH] %v", err)
	return helper.JsonError(c, status, msg)
}

func (ac *AuthController) setSessionCookie(c *fiber.Ctx, value string, expires time.Time) {
	cookie := &fiber.Cookie{
		Name:     helper.AdminCookieName,
		Value:    value,
		HTTPOnly: true,
		Secure:   ac.Svc.Config().Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  expires,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	c.Cookie(cookie)
}
