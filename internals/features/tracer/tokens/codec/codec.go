// Package codec membuat secret token survey dan digest satu arahnya.
package codec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

const (
	SecretBytes  = 32
	SecretLength = SecretBytes * 2
)

// GenerateSecret mengembalikan 64 karakter hex dari crypto/rand.
func GenerateSecret() (string, error) {
	return generateFrom(rand.Reader)
}

func generateFrom(r io.Reader) (string, error) {
	buf := make([]byte, SecretBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Digest adalah SHA-256 hex dari secret. Nilai inilah yang disimpan dan dicari di DB.
func Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// LooksLikeSecret memeriksa bentuk: tepat 64 karakter hex huruf kecil.
func LooksLikeSecret(s string) bool {
	if len(s) != SecretLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
