package controller

import (
	"bytes"
	"errors"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/service"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

type AdminController struct {
	Stats  *service.StatisticsService
	Export *service.ExportService
}

func NewAdminController(stats *service.StatisticsService, export *service.ExportService) *AdminController {
	return &AdminController{Stats: stats, Export: export}
}

// GET /api/a/surveys/:id/responses
func (ac *AdminController) List(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ac.Stats.List(c.UserContext(), surveyID, p.Offset, p.Limit)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonList(c, "Daftar response", rows, p.Pagination(total))
}

// GET /api/a/surveys/:id/statistics
func (ac *AdminController) Statistics(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	stats, err := ac.Stats.Compute(c.UserContext(), surveyID)
	if err != nil {
		return ac.fail(c, err)
	}
	return helper.JsonOK(c, "Statistik survey", stats)
}

// GET /api/a/surveys/:id/export
func (ac *AdminController) ExportCSV(c *fiber.Ctx) error {
	surveyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID survey tidak valid")
	}
	var buf bytes.Buffer
	filename, err := ac.Export.Export(c.UserContext(), surveyID, &buf)
	if err != nil {
		return ac.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="`+filename+`"; filename*=UTF-8''`+url.PathEscape(filename))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

func (ac *AdminController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, tokenService.ErrSurveyNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Survey tidak ditemukan")
	}
	log.Printf("[RESPONSE] %s %s gagal: %v", c.Method(), c.Path(), err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat data response")
}
