package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/controller"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/service"
)

// SurveyAdminRoutes: /api/a/surveys (CRUD + toggle).
func SurveyAdminRoutes(admin fiber.Router, svc *service.Service) {
	ctl := controller.NewSurveyController(svc)

	g := admin.Group("/surveys")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Patch("/:id/toggle", ctl.Toggle)
	g.Delete("/:id", ctl.Delete)
}
