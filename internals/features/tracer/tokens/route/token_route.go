package route

import (
	"github.com/gofiber/fiber/v2"

	invitationService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/service"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/controller"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
)

// TokenAdminRoutes: /api/a/surveys/:id/tokens
func TokenAdminRoutes(admin fiber.Router, svc *service.Service, inv *invitationService.Service) {
	ctl := controller.NewTokenController(svc, inv)

	g := admin.Group("/surveys/:id/tokens")
	g.Get("/", ctl.List)
	g.Post("/generate", ctl.Generate)
	g.Post("/batch", ctl.Batch)
}
