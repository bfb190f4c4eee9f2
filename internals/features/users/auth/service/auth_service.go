package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	authHelper "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/helper"
	authModel "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/model"
	authRepo "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/repository"
)

var (
	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrAdminNotFound      = errors.New("admin tidak ditemukan")
	ErrUsernameTaken      = errors.New("username sudah digunakan")
	ErrWrongPassword      = errors.New("password saat ini salah")
)

type Service struct {
	db  *gorm.DB
	cfg *configs.AppConfig
	now func() time.Time
}

func New(db *gorm.DB, cfg *configs.AppConfig) *Service {
	return &Service{db: db, cfg: cfg, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Config() *configs.AppConfig { return s.cfg }

type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Admin     *authModel.Admin `json:"admin"`
}

/* ==========================
   LOGIN (username + password)
========================== */

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	db := s.db.WithContext(ctx)
	username = strings.TrimSpace(username)

	admin, err := authRepo.FindAdminByUsername(db, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			authHelper.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(admin.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := IssueToken(s.cfg.Auth, admin, s.now())
	if err != nil {
		return nil, err
	}
	log.Printf("[AUTH] login admin=%s", admin.Username)
	return &LoginResult{Token: token, ExpiresAt: exp, Admin: admin}, nil
}

/* ==========================
   LOGOUT
========================== */

// Logout memasukkan token ke blacklist sampai exp-nya lewat.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	now := s.now()
	exp := ExpiryOf(raw, now.Add(s.cfg.Auth.JWTExpiry))
	return authRepo.BlacklistToken(s.db.WithContext(ctx), raw, exp)
}

// Authenticate dipakai middleware: blacklist lalu verifikasi JWT.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Claims, error) {
	blacklisted, err := authRepo.IsBlacklisted(s.db.WithContext(ctx), raw)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrInvalidToken
	}
	return ParseToken(s.cfg.Auth.JWTSecret, raw)
}

/* ==========================
   PROFILE
========================== */

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*authModel.Admin, error) {
	admin, err := authRepo.FindAdminByID(s.db.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	return admin, err
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, name, username string) (*authModel.Admin, error) {
	db := s.db.WithContext(ctx)
	name, username = strings.TrimSpace(name), strings.TrimSpace(username)

	taken, err := authRepo.IsUsernameTaken(db, username, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	if err := authRepo.UpdateAdminProfile(db, id, name, username); err != nil {
		return nil, err
	}
	return s.Profile(ctx, id)
}

// EnsureAdmin membuat admin bila username belum ada (dipakai seeder).
func (s *Service) EnsureAdmin(ctx context.Context, username, name, password string) (bool, error) {
	db := s.db.WithContext(ctx)
	if _, err := authRepo.FindAdminByUsername(db, username); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hashed, err := authHelper.HashPassword(password)
	if err != nil {
		return false, err
	}
	return true, authRepo.CreateAdmin(db, &authModel.Admin{Username: username, Name: name, Password: hashed})
}
