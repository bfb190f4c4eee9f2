package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretShape(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for i := 0; i < 64; i++ {
		s, err := GenerateSecret()
		require.NoError(t, err)
		assert.Len(t, s, SecretLength)
		assert.True(t, LooksLikeSecret(s), "secret %q is not lowercase hex", s)
		_, dup := seen[s]
		assert.False(t, dup, "duplicate secret generated")
		seen[s] = struct{}{}
	}
}

func TestDigestDeterministic(t *testing.T) {
	t.Parallel()

	s, err := GenerateSecret()
	require.NoError(t, err)

	d1 := Digest(s)
	d2 := Digest(s)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)
	assert.NotEqual(t, s, d1)
	assert.NotEqual(t, d1, Digest(s+"x"))
}

func TestDigestKnownVector(t *testing.T) {
	t.Parallel()

	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Digest("abc"))
}

func TestGenerateFromFixedReader(t *testing.T) {
	t.Parallel()

	s, err := generateFrom(bytes.NewReader(bytes.Repeat([]byte{0xab}, SecretBytes)))
	require.NoError(t, err)
	assert.Equal(t, "ab", s[:2])
	assert.Len(t, s, SecretLength)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateFromFailingReader(t *testing.T) {
	t.Parallel()

	_, err := generateFrom(failingReader{})
	require.Error(t, err)
}

func TestLooksLikeSecret(t *testing.T) {
	t.Parallel()

	valid := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	assert.True(t, LooksLikeSecret(valid))
	assert.False(t, LooksLikeSecret(valid[:63]))
	assert.False(t, LooksLikeSecret(valid+"0"))
	assert.False(t, LooksLikeSecret("0123456789ABCDEF0123456789abcdef0123456789abcdef0123456789abcdef"))
	assert.False(t, LooksLikeSecret("zz23456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"))
}
