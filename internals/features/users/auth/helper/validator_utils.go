package helpers

import (
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// dummyHash dipakai saat username tidak ada supaya waktu respons tetap mirip.
var dummyHash, _ = HashPassword("dummy-password-for-timing")

func CompareDummy(plain string) {
	_ = CheckPasswordHash(dummyHash, plain)
}
