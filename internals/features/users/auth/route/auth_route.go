package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/controller"
	"github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/service"
	rateLimiter "github.com/firmantawakal/simak-tracer-study/internals/middlewares"
)

// AuthRoutes: /api/auth (login publik, logout idempoten).
func AuthRoutes(app fiber.Router, svc *service.Service) {
	ctl := controller.NewAuthController(svc)

	baseAuth := app.Group("/api/auth")
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	baseAuth.Post("/logout", ctl.Logout)
}

// AdminAuthRoutes dipasang di group /api/a yang sudah melewati AdminAuth.
func AdminAuthRoutes(admin fiber.Router, svc *service.Service) {
	ctl := controller.NewAuthController(svc)

	admin.Get("/profile", ctl.Profile)
	admin.Put("/profile", ctl.UpdateProfile)
	admin.Put("/password", ctl.ChangePassword)
}
