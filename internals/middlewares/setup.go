package middlewares

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	"github.com/firmantawakal/simak-tracer-study/internals/middlewares/logger"
)

const RequestTimeout = 5 * time.Second

// SetupMiddlewares memasang middleware global sesuai urutan yang dipakai semua route.
func SetupMiddlewares(app *fiber.App, cfg *configs.AppConfig) {
	app.Use(CorsMiddleware(cfg.Server.CORSOrigins))
	app.Use(GlobalRateLimiter())
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(log.Writer()))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(RequestContext(RequestTimeout))
}
