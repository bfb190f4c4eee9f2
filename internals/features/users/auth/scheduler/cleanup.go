package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/repository"
)

// CleanupBlacklist menghapus token blacklist yang sudah kadaluarsa lebih dari ttlDays.
func CleanupBlacklist(db *gorm.DB, ttlDays int, now time.Time) {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
	before := now.Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := authRepo.CleanupExpiredBlacklist(db, before)
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}

// StartBlacklistCleanupScheduler menjalankan pembersihan tiap hari.
// Pemanggil wajib memanggil Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, ttlDays int) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc("@daily", func() {
		CleanupBlacklist(db, ttlDays, time.Now().UTC())
	}); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
