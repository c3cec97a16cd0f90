package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"9:30", "24:00", "09:60", "morning", ""} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	shifted, err := ts.AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), shifted)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("08:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("14:00").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 12, 14, 0, 0, 0, time.UTC), at)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 11, 12, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}
