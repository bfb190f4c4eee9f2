package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText merapikan spasi dan menyamakan bentuk unicode (NFC) supaya
// "é" komposit dan dekomposisi dianggap sama.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", 8) + s[len(s)-2:]
}
