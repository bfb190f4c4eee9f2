package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/dto"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/service"
	tokenController "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/controller"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

type InvitationController struct {
	Svc      *service.Service
	Validate *validator.Validate
}

func NewInvitationController(svc *service.Service) *InvitationController {
	return &InvitationController{Svc: svc, Validate: helper.NewValidator()}
}

// POST /api/a/surveys/:id/invitations
func (ic *InvitationController) Invite(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	var req dto.InviteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}
	if err := ic.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	report, err := ic.Svc.Invite(c.UserContext(), surveyID, req.AlumniIDs, req.ExpiryDays)
	if err != nil {
		return tokenController.Fail(c, err)
	}
	msg := "Undangan terkirim"
	if report.Failed > 0 {
		msg = "Sebagian undangan gagal dikirim"
	}
	return helper.JsonOK(c, msg, report)
}
