package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Tracer_Study_2024", SafeFilename("Tracer Study 2024"))
	assert.Equal(t, "Survei_Kepuasan_Lulusan_e", SafeFilename("Survei Kepuasan/Lulusan é"))
	assert.Equal(t, "export", SafeFilename("   "))
}

func TestNewPaging(t *testing.T) {
	t.Parallel()

	p := NewPaging("3", "20", 10, 100)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 40, p.Offset)

	p = NewPaging("-1", "1000", 10, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)

	p = NewPaging("", "abc", 10, 100)
	assert.Equal(t, 10, p.PerPage)
}

func TestBuildPaginationFromPage(t *testing.T) {
	t.Parallel()

	pg := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	empty := BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	decomposed := "Teknik Informatika e\u0301"
	assert.Equal(t, "Teknik Informatika \u00e9", NormalizeText("  "+decomposed+" "))
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "****", MaskSecret("abc"))
	assert.Equal(t, "ab********yz", MaskSecret("abcdefxyz"))
}
