package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
	authModel "github.com/firmantawakal/simak-tracer-study/internals/features/users/auth/model"
)

var ErrInvalidToken = errors.New("token admin tidak valid")

// Claims JWT admin: {id, username, name, exp}.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// IssueToken menandatangani JWT HS256 untuk admin.
func IssueToken(cfg configs.AuthConfig, admin *authModel.Admin, now time.Time) (string, time.Time, error) {
	exp := now.Add(cfg.JWTExpiry)
	claims := Claims{
		ID:       admin.ID.String(),
		Username: admin.Username,
		Name:     admin.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken memverifikasi tanda tangan (wajib HMAC) dan exp.
func ParseToken(secret, raw string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("JWT secret kosong")
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("signing method tidak didukung: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	return claims, nil
}

// ExpiryOf membaca exp tanpa verifikasi; dipakai untuk TTL blacklist.
func ExpiryOf(raw string, fallback time.Time) time.Time {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil || claims.ExpiresAt == nil {
		return fallback
	}
	return claims.ExpiresAt.Time
}
