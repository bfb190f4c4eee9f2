package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/controller"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/service"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	rateLimiter "github.com/firmantawakal/simak-tracer-study/internals/middlewares"
)

// PublicSurveyRoutes: /api/public/surveys/:token (link alumni).
func PublicSurveyRoutes(public fiber.Router, tokens *tokenService.Service, sub *service.SubmissionService) {
	ctl := controller.NewPublicController(tokens, sub)

	g := public.Group("/surveys/:token")
	g.Get("/", ctl.Show)
	g.Post("/responses", rateLimiter.SubmitRateLimiter(), ctl.Submit)
}

// ResponseAdminRoutes: list, statistik, dan export CSV.
func ResponseAdminRoutes(admin fiber.Router, stats *service.StatisticsService, export *service.ExportService) {
	ctl := controller.NewAdminController(stats, export)

	g := admin.Group("/surveys/:id")
	g.Get("/responses", ctl.List)
	g.Get("/statistics", ctl.Statistics)
	g.Get("/export", ctl.ExportCSV)
}
