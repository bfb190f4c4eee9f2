package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/controller"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/service"
)

// AlumniAdminRoutes: /api/a/alumni
func AlumniAdminRoutes(admin fiber.Router, svc *service.Service) {
	ctl := controller.NewAlumniController(svc)

	g := admin.Group("/alumni")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Post("/import", ctl.Import)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
