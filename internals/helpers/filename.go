package helper

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// SafeFilename mentransliterasi ke ASCII lalu mengganti karakter selain
// [A-Za-z0-9] dengan '_'.
func SafeFilename(name string) string {
	ascii := unidecode.Unidecode(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(ascii))
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "export"
	}
	return b.String()
}
