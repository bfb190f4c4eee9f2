package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	invitationService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/service"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/dto"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

type TokenController struct {
	Svc         *service.Service
	Invitations *invitationService.Service
	Validate    *validator.Validate
}

func NewTokenController(svc *service.Service, inv *invitationService.Service) *TokenController {
	return &TokenController{Svc: svc, Invitations: inv, Validate: helper.NewValidator()}
}

// GET /api/a/surveys/:id/tokens
func (tc *TokenController) List(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	if _, err := tc.Svc.Survey(c.UserContext(), surveyID); err != nil {
		return Fail(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)
	rows, total, err := tc.Svc.List(c.UserContext(), surveyID, p.Offset, p.Limit)
	if err != nil {
		return Fail(c, err)
	}
	return helper.JsonList(c, "Daftar token", rows, p.Pagination(total))
}

// POST /api/a/surveys/:id/tokens/generate
func (tc *TokenController) Generate(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	var req dto.GenerateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}
	if err := tc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := tc.Svc.Generate(c.UserContext(), surveyID, req.AlumniIDs, service.GenerateOptions{
		ExpiryDays:    req.ExpiryDays,
		ReuseExisting: req.ReuseExisting,
	})
	if err != nil {
		return Fail(c, err)
	}
	return helper.JsonCreated(c, "Token berhasil dibuat", res)
}

// POST /api/a/surveys/:id/tokens/batch
func (tc *TokenController) Batch(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	var req dto.BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := tc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	ctx := c.UserContext()
	out := dto.BatchResult{Action: req.Action}
	var msg string
	switch req.Action {
	case dto.ActionExtend:
		n, err := tc.Svc.Extend(ctx, surveyID, req.ExtendDays)
		if err != nil {
			return Fail(c, err)
		}
		out.Affected = n
		msg = "Masa berlaku token diperpanjang"
	case dto.ActionDeleteExpired:
		n, err := tc.Svc.DeleteExpired(ctx, surveyID)
		if err != nil {
			return Fail(c, err)
		}
		out.Affected = n
		msg = "Token kadaluarsa dihapus"
	case dto.ActionResend:
		report, err := tc.Invitations.Resend(ctx, surveyID, req.ExtendDays)
		if err != nil {
			return Fail(c, err)
		}
		out.Affected = int64(report.Sent)
		out.Report = report
		msg = "Undangan dikirim ulang"
	}
	return helper.JsonOK(c, msg, out)
}

// Fail memetakan error domain token ke response admin.
func Fail(c *fiber.Ctx, err error) error {
	var unknown *service.UnknownAlumniError
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Survey tidak ditemukan")
	case errors.Is(err, service.ErrInvalidExpiry):
		return helper.JsonValidationError(c, map[string][]string{"expiry_days": {"harus antara 1 dan 365"}})
	case errors.As(err, &unknown):
		return helper.JsonValidationError(c, map[string][]string{"alumni_ids": unknown.IDs})
	}
	log.Printf("[TOKEN] %s %s gagal: %v", c.Method(), c.Path(), err)
	r := service.ReasonFor(err)
	return helper.JsonErrorCode(c, r.Status, r.Code, r.Message)
}
