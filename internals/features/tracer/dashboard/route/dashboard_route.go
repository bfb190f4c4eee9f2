package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/dashboard/controller"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/dashboard/service"
)

func DashboardRoutes(admin fiber.Router, svc *service.Service) {
	ctl := controller.NewDashboardController(svc)
	admin.Get("/dashboard", ctl.Summary)
}
