package datex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocation(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	// 2025-04-11 17:30 UTC is 2025-04-12 01:30 in Manila.
	punch := time.Date(2025, 4, 11, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, Date(2025, 4, 12), DateOf(punch, manila))
	assert.Equal(t, Date(2025, 4, 11), DateOf(punch, time.UTC))
	assert.Equal(t, 90, MinuteOfDay(punch, manila))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseClock("18:00:00")
	require.NoError(t, err)
	assert.Equal(t, 1080, m)

	_, err = ParseClock("9am")
	assert.Error(t, err)
}

func TestEndOfMonthAndWithin(t *testing.T) {
	assert.Equal(t, Date(2024, 2, 29), EndOfMonth(Date(2024, 2, 16)))
	assert.Equal(t, Date(2025, 4, 30), EndOfMonth(Date(2025, 4, 1)))

	assert.True(t, Within(Date(2025, 4, 1), Date(2025, 4, 1), Date(2025, 4, 15)))
	assert.True(t, Within(Date(2025, 4, 15), Date(2025, 4, 1), Date(2025, 4, 15)))
	assert.False(t, Within(Date(2025, 4, 16), Date(2025, 4, 1), Date(2025, 4, 15)))
	assert.Len(t, Range(Date(2025, 4, 1), Date(2025, 4, 15)), 15)
}
