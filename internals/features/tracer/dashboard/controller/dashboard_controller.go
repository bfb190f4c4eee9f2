package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/dashboard/service"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
)

type DashboardController struct {
	Svc *service.Service
}

func NewDashboardController(svc *service.Service) *DashboardController {
	return &DashboardController{Svc: svc}
}

// GET /api/a/dashboard
func (dc *DashboardController) Summary(c *fiber.Ctx) error {
	res, err := dc.Svc.Summary(c.UserContext())
	if err != nil {
		log.Printf("[DASHBOARD] gagal memuat ringkasan: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat dashboard")
	}
	return helper.JsonOK(c, "Ringkasan dashboard", res)
}
