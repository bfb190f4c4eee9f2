package constants

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type ImportFormat int

const (
	ImportUnknown ImportFormat = iota
	ImportCSV
	ImportJSON
)

func (f ImportFormat) String() string {
	switch f {
	case ImportCSV:
		return "csv"
	case ImportJSON:
		return "json"
	default:
		return "unknown"
	}
}

// DetectImportFormat membaca isi file (bukan hanya ekstensi) untuk
// menentukan format import alumni. Ekstensi hanya dipakai untuk text/plain.
func DetectImportFormat(head []byte, filename string) ImportFormat {
	mt := mimetype.Detect(head)
	switch {
	case mt.Is("text/csv"):
		return ImportCSV
	case mt.Is("application/json"):
		return ImportJSON
	case mt.Is("text/plain"):
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".csv":
			return ImportCSV
		case ".json":
			return ImportJSON
		}
	}
	return ImportUnknown
}
