package alumni

import (
	_ "embed"
	"encoding/json"
	"log"

	"gorm.io/gorm"

	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
)

//go:embed data_alumni.json
var dataAlumni []byte

type AlumniSeed struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	GraduationYear int    `json:"graduation_year"`
	Major          string `json:"major"`
}

func SeedAlumni(db *gorm.DB) error {
	var seeds []AlumniSeed
	if err := json.Unmarshal(dataAlumni, &seeds); err != nil {
		return err
	}

	// Ambil semua email yang sudah ada
	var existing []string
	if err := db.Model(&alumniModel.Alumni{}).Pluck("email", &existing).Error; err != nil {
		return err
	}
	existingMap := make(map[string]bool, len(existing))
	for _, e := range existing {
		existingMap[e] = true
	}

	var rows []alumniModel.Alumni
	for _, s := range seeds {
		if existingMap[s.Email] {
			log.Printf("ℹ️ Alumni dengan email '%s' sudah ada, dilewati.", s.Email)
			continue
		}
		rows = append(rows, alumniModel.Alumni{
			Name:           s.Name,
			Email:          s.Email,
			GraduationYear: s.GraduationYear,
			Major:          s.Major,
		})
	}

	if len(rows) == 0 {
		log.Println("ℹ️ Tidak ada alumni baru untuk diinsert.")
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return err
	}
	log.Printf("✅ Berhasil insert %d alumni", len(rows))
	return nil
}
