package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	"github.com/firmantawakal/simak-tracer-study/internals/features/settings/controller"
	invitationService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/service"
)

func SettingsRoutes(admin fiber.Router, cfg *configs.AppConfig, inv *invitationService.Service) {
	ctl := controller.NewSettingsController(cfg, inv)

	g := admin.Group("/settings")
	g.Get("/", ctl.Get)
	g.Post("/test-email", ctl.TestEmail)
}
