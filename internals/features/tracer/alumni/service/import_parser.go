package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/firmantawakal/simak-tracer-study/internals/features/tracer/alumni/dto"
)

var csvColumns = []string{"name", "email", "graduation_year", "major"}

// ImportRow adalah satu baris input beserta nomor barisnya di file asal.
type ImportRow struct {
	Line int
	Data dto.AlumniRequest
}

// RowsFromJSON memberi nomor baris 1..n untuk payload JSON.
func RowsFromJSON(in []dto.AlumniRequest) []ImportRow {
	out := make([]ImportRow, len(in))
	for i, r := range in {
		out[i] = ImportRow{Line: i + 1, Data: r}
	}
	return out
}

// ParseCSV membaca file dengan header name,email,graduation_year,major
// (urutan bebas, BOM diabaikan). Baris yang tidak bisa dibaca langsung
// masuk ke daftar error dengan nomor barisnya.
func ParseCSV(r io.Reader) ([]ImportRow, []dto.ImportError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("file CSV kosong")
		}
		return nil, nil, fmt.Errorf("header CSV tidak terbaca: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		idx[h] = i
	}
	for _, col := range csvColumns {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("kolom %q tidak ada di header", col)
		}
	}

	var rows []ImportRow
	var bad []dto.ImportError
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			bad = append(bad, dto.ImportError{Row: line, Error: err.Error()})
			continue
		}
		get := func(col string) string {
			if i := idx[col]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		if isBlankRecord(rec) {
			continue
		}
		year, err := strconv.Atoi(get("graduation_year"))
		if err != nil {
			bad = append(bad, dto.ImportError{Row: line, Email: get("email"), Error: "graduation_year bukan angka"})
			continue
		}
		rows = append(rows, ImportRow{Line: line, Data: dto.AlumniRequest{
			Name:           get("name"),
			Email:          get("email"),
			GraduationYear: year,
			Major:          get("major"),
		}})
	}
	return rows, bad, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func summarize(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+strings.Join(fields[k], ", "))
	}
	return strings.Join(parts, "; ")
}
