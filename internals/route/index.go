package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	settingsRoute "github.com/firmantawakal/simak-tracer-study/internals/features/settings/route"
	alumniRoute "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/route"
	alumniService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/service"
	dashboardRoute "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/dashboard/route"
	dashboardService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/dashboard/service"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/mailer"
	invitationRoute "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/route"
	invitationService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/service"
	responseRoute "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/route"
	responseService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/service"
	surveyRoute "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/route"
	surveyService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/service"
	tokenRoute "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/route"
	tokenService "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/service"
	authRoute "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/route"
	authService "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/service"
	"github.com/firmantawakal/simak-tracer-study/internals/helpers/dbtime"
	authMiddleware "github.com/firmantawakal/simak-tracer-study/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.AppConfig, m mailer.Mailer) {
	startTime = time.Now()

	// ===================== SERVICES =====================
	auth := authService.New(db, cfg)
	tokens := tokenService.New(db, cfg)
	invitations := invitationService.New(tokens, m)
	stats := responseService.NewStatisticsService(db)

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	// harus sebelum group /api/a: prefix "/api/a" juga cocok dengan "/api/auth"
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, auth)

	// ===================== GROUPS =====================

	// PUBLIC → akses dengan token survey, tanpa login
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → JWT admin (header Bearer atau cookie)
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AdminAuth(auth))

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting tracer study routes...")
	responseRoute.PublicSurveyRoutes(public, tokens, responseService.NewSubmissionService(tokens))

	authRoute.AdminAuthRoutes(admin, auth)
	dashboardRoute.DashboardRoutes(admin, dashboardService.New(db))
	alumniRoute.AlumniAdminRoutes(admin, alumniService.New(db))
	surveyRoute.SurveyAdminRoutes(admin, surveyService.New(db))
	tokenRoute.TokenAdminRoutes(admin, tokens, invitations)
	invitationRoute.InvitationAdminRoutes(admin, invitations)
	responseRoute.ResponseAdminRoutes(admin, stats, responseService.NewExportService(stats, dbtime.Location()))
	settingsRoute.SettingsRoutes(admin, cfg, invitations)
}
