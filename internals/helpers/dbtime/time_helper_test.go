package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToLocalShiftsToSevenHoursAhead(t *testing.T) {
	utc := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	local := ToLocal(utc)

	assert.True(t, local.Equal(utc))
	assert.Equal(t, 3, local.Hour())
	assert.Equal(t, 2, local.Day())

	assert.True(t, ToLocal(time.Time{}).IsZero())
	assert.Nil(t, ToLocalPtr(nil))
}
