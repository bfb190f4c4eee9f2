package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	database "github.com/firmantawakal/simak-tracer-study/internals/databases"
	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/invitations/mailer"
	scheduler "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/scheduler"
	helper "github.com/firmantawakal/simak-tracer-study/internals/helpers"
	middlewares "github.com/firmantawakal/simak-tracer-study/internals/middlewares"
	routes "github.com/firmantawakal/simak-tracer-study/internals/route"
	"github.com/firmantawakal/simak-tracer-study/internals/seeds"
)

func main() {
	cfg := configs.LoadEnv()
	logCloser := configs.SetupLogOutput(cfg.Log)
	defer logCloser.Close()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Konfigurasi tidak valid, server tidak dijalankan:\n%v", err)
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             6 << 20, // import CSV maks 5 MB + overhead multipart
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware global (cors, limiter, recover, log, gzip, etag, request-id)
	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Database tidak bisa dihubungi: %v", err)
	}
	database.TunePool(db)
	database.WarmUpQueries(db)

	if cfg.Database.Migrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("❌ Migrasi gagal: %v", err)
		}
	}
	if cfg.Seed {
		if err := seeds.RunAllSeeds(db, cfg); err != nil {
			log.Fatalf("❌ Seeder gagal: %v", err)
		}
	}

	// ⏱ scheduler setelah DB siap
	cron, err := scheduler.StartBlacklistCleanupScheduler(db, cfg.Auth.BlacklistTTLDays)
	if err != nil {
		log.Fatalf("❌ Scheduler gagal: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, db, cfg, mailer.NewSMTPClient(cfg.Mail))

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Server.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Server.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-cron.Stop().Done()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
