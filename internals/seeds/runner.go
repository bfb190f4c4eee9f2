package seeds

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	"github.com/firmantawakal/simak-tracer-study/internals/seeds/admin"
	"github.com/firmantawakal/simak-tracer-study/internals/seeds/alumni"
	"github.com/firmantawakal/simak-tracer-study/internals/seeds/surveys"
)

func RunAllSeeds(db *gorm.DB, cfg *configs.AppConfig) error {
	log.Println("🌱 Menjalankan seeder...")

	//* Admin
	if err := admin.SeedAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	//* Alumni
	if err := alumni.SeedAlumni(db); err != nil {
		return fmt.Errorf("seed alumni: %w", err)
	}

	//* Survey contoh
	if err := surveys.SeedSampleSurvey(db); err != nil {
		return fmt.Errorf("seed survey: %w", err)
	}

	log.Println("🌱 Seeder selesai.")
	return nil
}
