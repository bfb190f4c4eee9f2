package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig dibangun sekali saat start lalu dioper ke service yang butuh.
type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Token    TokenConfig
	Mail     MailConfig
	Log      LogConfig
	Seed     bool
}

type ServerConfig struct {
	Port        string
	BaseURL     string
	CORSOrigins []string
	Environment string
}

type DatabaseConfig struct {
	URL              string
	User             string
	Password         string
	Host             string
	Port             string
	Name             string
	SSLMode          string
	StatementTimeout time.Duration
	Migrate          bool
}

type AuthConfig struct {
	JWTSecret        string
	JWTExpiry        time.Duration
	BlacklistTTLDays int
	CookieSecure     bool
}

type TokenConfig struct {
	ExpiryDays int
}

type MailConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromName    string
	FromEmail   string
	Concurrency int
	// SendTimeout membatasi satu pesan (termasuk penerbitan tokennya).
	SendTimeout time.Duration
}

type LogConfig struct {
	File      string
	MaxSizeMB int
}

const (
	MinJWTSecretLength = 32
	MinTokenExpiryDays = 1
	MaxTokenExpiryDays = 365
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() *AppConfig {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Printf("❌ Konfigurasi bermasalah: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	return cfg
}

// FromEnv membaca seluruh konfigurasi dari environment proses tanpa memuat .env.
func FromEnv() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        GetEnv("PORT", "3000"),
			BaseURL:     strings.TrimRight(GetEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
			CORSOrigins: splitList(GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
			Environment: GetEnv("RAILWAY_ENVIRONMENT", GetEnv("APP_ENV", "development")),
		},
		Database: DatabaseConfig{
			URL:              GetEnv("DATABASE_URL"),
			User:             GetEnv("DB_USER"),
			Password:         GetEnv("DB_PASSWORD"),
			Host:             GetEnv("DB_HOST", "localhost"),
			Port:             GetEnv("DB_PORT", "5432"),
			Name:             GetEnv("DB_NAME", "tracer_study"),
			SSLMode:          GetEnv("DB_SSLMODE", "disable"),
			StatementTimeout: time.Duration(GetEnvInt("DB_STATEMENT_TIMEOUT_MS", 5000)) * time.Millisecond,
			Migrate:          GetEnvBool("DB_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:        GetEnv("JWT_SECRET"),
			JWTExpiry:        time.Duration(GetEnvInt("JWT_EXPIRY_HOURS", 24*7)) * time.Hour,
			BlacklistTTLDays: GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7),
			CookieSecure:     GetEnvBool("COOKIE_SECURE", false),
		},
		Token: TokenConfig{
			ExpiryDays: GetEnvInt("TOKEN_EXPIRY_DAYS", 7),
		},
		Mail: MailConfig{
			Host:        GetEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:        GetEnvInt("SMTP_PORT", 587),
			User:        GetEnv("SMTP_USER"),
			Password:    GetEnv("SMTP_PASSWORD"),
			FromName:    GetEnv("EMAIL_FROM_NAME", "Universitas Dumai"),
			FromEmail:   GetEnv("EMAIL_FROM", "noreply@universitasdumai.ac.id"),
			Concurrency: GetEnvInt("MAIL_CONCURRENCY", 4),
			SendTimeout: time.Duration(GetEnvInt("MAIL_SEND_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Log: LogConfig{
			File:      GetEnv("LOG_FILE"),
			MaxSizeMB: GetEnvInt("LOG_MAX_SIZE_MB", 50),
		},
		Seed: GetEnvBool("SEED", false),
	}
}

// Validate mengumpulkan semua masalah konfigurasi sekaligus.
func (c *AppConfig) Validate() error {
	var errs []error
	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET minimal %d karakter", MinJWTSecretLength))
	}
	if c.Token.ExpiryDays < MinTokenExpiryDays || c.Token.ExpiryDays > MaxTokenExpiryDays {
		errs = append(errs, fmt.Errorf("TOKEN_EXPIRY_DAYS harus antara %d dan %d", MinTokenExpiryDays, MaxTokenExpiryDays))
	}
	if c.Mail.Concurrency < 1 {
		errs = append(errs, errors.New("MAIL_CONCURRENCY minimal 1"))
	}
	if c.Mail.SendTimeout <= 0 {
		errs = append(errs, errors.New("MAIL_SEND_TIMEOUT_SECONDS minimal 1"))
	}
	if c.Database.URL == "" && c.Database.User == "" {
		errs = append(errs, errors.New("DATABASE_URL atau DB_USER wajib diisi"))
	}
	return errors.Join(errs...)
}

// TokenTTL adalah masa berlaku default token survey.
func (c *AppConfig) TokenTTL() time.Duration {
	return time.Duration(c.Token.ExpiryDays) * 24 * time.Hour
}

// SurveyURL membentuk link survey dari secret plaintext.
func (c *AppConfig) SurveyURL(secret string) string {
	return c.Server.BaseURL + "/survey/" + secret
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[CONFIG] %s bukan angka (%q), pakai default %d", key, v, def)
		return def
	}
	return n
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
