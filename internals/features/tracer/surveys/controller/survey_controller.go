package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/dto"
	surveyRepo "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/repository"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

type SurveyController struct {
	Svc      *service.Service
	Validate *validator.Validate
}

func NewSurveyController(svc *service.Service) *SurveyController {
	return &SurveyController{Svc: svc, Validate: helper.NewValidator()}
}

// GET /api/a/surveys
func (sc *SurveyController) List(c *fiber.Ctx) error {
	var q dto.ListSurveysQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)

	rows, total, err := sc.Svc.List(c.UserContext(), surveyRepo.ListFilter{
		Search:   q.Search,
		IsActive: q.IsActive,
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		return sc.fail(c, err)
	}
	return helper.JsonList(c, "Daftar survey", rows, p.Pagination(total))
}

// GET /api/a/surveys/:id
func (sc *SurveyController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	res, err := sc.Svc.Get(c.UserContext(), id)
	if err != nil {
		return sc.fail(c, err)
	}
	return helper.JsonOK(c, "Detail survey", res)
}

// POST /api/a/surveys
func (sc *SurveyController) Create(c *fiber.Ctx) error {
	var req dto.SurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := sc.Svc.Create(c.UserContext(), req)
	if err != nil {
		return sc.fail(c, err)
	}
	return helper.JsonCreated(c, "Survey berhasil dibuat", res)
}

// PUT /api/a/surveys/:id
func (sc *SurveyController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	var req dto.SurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := sc.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return sc.fail(c, err)
	}
	return helper.JsonUpdated(c, "Survey berhasil diperbarui", res)
}

// PATCH /api/a/surveys/:id/toggle
func (sc *SurveyController) Toggle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	res, err := sc.Svc.Toggle(c.UserContext(), id)
	if err != nil {
		return sc.fail(c, err)
	}
	msg := "Survey dinonaktifkan"
	if res.IsActive {
		msg = "Survey diaktifkan"
	}
	return helper.JsonUpdated(c, msg, res)
}

// DELETE /api/a/surveys/:id
func (sc *SurveyController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	if err := sc.Svc.Delete(c.UserContext(), id); err != nil {
		return sc.fail(c, err)
	}
	return helper.JsonDeleted(c, "Survey berhasil dihapus", fiber.Map{"id": id})
}

func (sc *SurveyController) fail(c *fiber.Ctx, err error) error {
	var qerr *service.QuestionError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Survey tidak ditemukan")
	case errors.As(err, &qerr):
		return helper.JsonValidationError(c, qerr.Fields)
	}
	log.Printf("[SURVEY] %s %s gagal: %v", c.Method(), c.Path(), err)
	status, msg := helper.MapDBError(err)
	return helper.JsonError(c, status, msg)
}
