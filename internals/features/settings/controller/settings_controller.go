package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	"github.com/firmantawakal/simak-tracer-study/internals/features/settings/dto"
	invitationDTO "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/dto"
	invitationService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/service"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

type SettingsController struct {
	Cfg         *configs.AppConfig
	Invitations *invitationService.Service
	Validate    *validator.Validate
}

func NewSettingsController(cfg *configs.AppConfig, inv *invitationService.Service) *SettingsController {
	return &SettingsController{Cfg: cfg, Invitations: inv, Validate: helper.NewValidator()}
}

// GET /api/a/settings
func (sc *SettingsController) Get(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Pengaturan", dto.FromConfig(sc.Cfg, helper.MaskSecret))
}

// POST /api/a/settings/test-email
func (sc *SettingsController) TestEmail(c *fiber.Ctx) error {
	var req invitationDTO.TestEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := sc.Invitations.SendTest(c.UserContext(), req.To); err != nil {
		r := tokenService.ReasonFor(err)
		return helper.JsonErrorCode(c, r.Status, r.Code, r.Message)
	}
	return helper.JsonOK(c, "Email test berhasil dikirim ke "+req.To, nil)
}
