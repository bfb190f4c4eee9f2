package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokedTokenStale(t *testing.T) {
	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := RevokedToken{ExpiredAt: exp}
	ttl := 7 * 24 * time.Hour

	assert.False(t, r.Stale(exp, ttl))
	assert.False(t, r.Stale(exp.Add(ttl-time.Second), ttl))
	assert.True(t, r.Stale(exp.Add(ttl), ttl))
}
