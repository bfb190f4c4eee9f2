package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/dto"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/service"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

// PublicController melayani alumni pemegang link survey (tanpa login).
type PublicController struct {
	Tokens     *tokenService.Service
	Submission *service.SubmissionService
}

func NewPublicController(tokens *tokenService.Service, sub *service.SubmissionService) *PublicController {
	return &PublicController{Tokens: tokens, Submission: sub}
}

// GET /api/public/surveys/:token
func (pc *PublicController) Show(c *fiber.Ctx) error {
	token := c.Params("token")
	access, err := pc.Tokens.Validate(c.UserContext(), token)
	if err != nil {
		r := tokenService.ReasonFor(err)
		if r.Status >= fiber.StatusInternalServerError {
			log.Printf("[PUBLIC] validasi token %s gagal: %v", helper.MaskSecret(token), err)
		}
		return c.Status(r.Status).JSON(dto.InvalidAccess{Valid: false, Reason: r.Code, Message: r.Message})
	}
	return c.JSON(dto.SurveyAccess{Valid: true, Survey: access, AlumniName: access.AlumniName})
}

// POST /api/public/surveys/:token/responses
func (pc *PublicController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SubmitResult{
			Success: false,
			Reason:  "BAD_REQUEST",
			Message: "Payload tidak valid",
		})
	}

	if err := pc.Submission.Submit(c.UserContext(), c.Params("token"), req.Answers); err != nil {
		r := tokenService.ReasonFor(err)
		return c.Status(r.Status).JSON(dto.SubmitResult{
			Success: false,
			Reason:  r.Code,
			Message: r.Message,
			Errors:  r.Fields,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitResult{Success: true, Message: dto.MsgThanks})
}
