package admin

import (
	"context"
	"log"

	"github.com/sethvargo/go-password/password"
	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	authService "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/service"
)

const (
	DefaultUsername = "admin"
	DefaultName     = "Administrator"
)

// SeedAdmin membuat akun admin bila belum ada. Tanpa ADMIN_PASSWORD,
// password dibangkitkan acak dan dicetak sekali ke log.
func SeedAdmin(db *gorm.DB, cfg *configs.AppConfig) error {
	pass := configs.GetEnv("ADMIN_PASSWORD")
	generated := false
	if pass == "" {
		p, err := password.Generate(16, 4, 0, false, false)
		if err != nil {
			return err
		}
		pass, generated = p, true
	}

	created, err := authService.New(db, cfg).EnsureAdmin(context.Background(), DefaultUsername, DefaultName, pass)
	if err != nil {
		return err
	}
	switch {
	case !created:
		log.Printf("ℹ️ Admin '%s' sudah ada, dilewati.", DefaultUsername)
	case generated:
		log.Printf("✅ Admin '%s' dibuat dengan password: %s (segera ganti!)", DefaultUsername, pass)
	default:
		log.Printf("✅ Admin '%s' dibuat dari ADMIN_PASSWORD.", DefaultUsername)
	}
	return nil
}
