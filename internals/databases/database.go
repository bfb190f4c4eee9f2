package databases

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
)

var DB *gorm.DB

// BuildDSN memakai DATABASE_URL apa adanya, atau merangkai dari DB_*.
func BuildDSN(cfg configs.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + cfg.Port,
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	q.Set("statement_timeout", fmt.Sprintf("%d", cfg.StatementTimeout.Milliseconds()))
	q.Set("application_name", "tracer-study")
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectDB membuka koneksi Postgres. Gagal konek saat boot dicoba ulang
// beberapa kali karena DB sering belum siap saat container naik.
func ConnectDB(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	var db *gorm.DB
	err := retry.Do(
		func() error {
			conn, err := gorm.Open(postgres.New(postgres.Config{
				DSN:                  dsn,
				PreferSimpleProtocol: true,
			}), &gorm.Config{
				Logger:      configs.NewGormLogger(gormLogger.Warn),
				PrepareStmt: false,
			})
			if err != nil {
				return err
			}
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				_ = sqlDB.Close()
				return err
			}
			db = conn
			return nil
		},
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[DB] Percobaan koneksi #%d gagal: %v", n+1, err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	DB = db
	log.Println("✅ Database terkoneksi.")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[DB] Gagal ambil sql.DB: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries membuka koneksi pertama supaya request awal tidak lambat.
func WarmUpQueries(db *gorm.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var one int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Printf("[DB] Warm-up gagal: %v", err)
	}
}

// Ping dipakai endpoint health.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database belum diinisialisasi")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
