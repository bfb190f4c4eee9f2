package dbtime

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const DefaultTimezone = "Asia/Jakarta"

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// Location mengembalikan zona waktu tampilan aplikasi (APP_TIMEZONE).
// Database tetap menyimpan UTC; zona ini hanya untuk email dan export.
// Tanpa tzdata di image, fallback ke WIB (UTC+7).
func Location() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = DefaultTimezone
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("[WARN] timezone %s tidak tersedia, pakai UTC+7", name)
			loc = time.FixedZone("WIB", 7*60*60)
		}
		appLoc = loc
	})
	return appLoc
}

// ToLocal mengonversi waktu (biasanya dari DB = UTC) ke zona aplikasi.
// Kalau t.IsZero() → dikembalikan apa adanya.
func ToLocal(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location())
}

// Versi pointer, untuk field *time.Time
func ToLocalPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToLocal(*t)
	return &v
}
