package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/controller"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/service"
)

func InvitationAdminRoutes(admin fiber.Router, svc *service.Service) {
	ctl := controller.NewInvitationController(svc)
	admin.Post("/surveys/:id/invitations", ctl.Invite)
}
