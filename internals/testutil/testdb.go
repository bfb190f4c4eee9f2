// Package testutil menyediakan database SQLite sementara untuk test.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	alumniModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/model"
	responseModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/responses/model"
	surveyModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/surveys/model"
	tokenModel "github.com/firmantawakal/simak-tracer-study/internals/features/tracer/tokens/model"
	authModel "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/model"
)

// SetupTestDB membuka SQLite berbasis file di t.TempDir() dengan skema lengkap.
// Hanya satu koneksi dibuka sehingga transaksi bersamaan berjalan bergantian.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "tracer.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: configs.NewGormLogger(gormLogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&authModel.Admin{},
		&authModel.RevokedToken{},
		&alumniModel.Alumni{},
		&surveyModel.Survey{},
		&tokenModel.SurveyToken{},
		&responseModel.Response{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// TestConfig mengembalikan konfigurasi minimal yang valid untuk test.
func TestConfig() *configs.AppConfig {
	return &configs.AppConfig{
		Server: configs.ServerConfig{Port: "0", BaseURL: "https://tracer.test"},
		Auth: configs.AuthConfig{
			JWTSecret:        "test-secret-test-secret-test-secret-1234",
			JWTExpiry:        time.Hour,
			BlacklistTTLDays: 7,
		},
		Token: configs.TokenConfig{ExpiryDays: 7},
		Mail: configs.MailConfig{
			Host: "localhost", Port: 2525,
			FromName: "Universitas Dumai", FromEmail: "noreply@universitasdumai.ac.id",
			Concurrency: 2, SendTimeout: 5 * time.Second,
		},
	}
}

// FixedClock mengembalikan jam yang bisa dimajukan manual.
type FixedClock struct {
	T time.Time
}

func NewFixedClock() *FixedClock {
	return &FixedClock{T: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
}

func (c *FixedClock) Now() time.Time { return c.T }

func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }
